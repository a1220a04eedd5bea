package analyzer

import "github.com/BerylCAtieno/opticours-api/internal/models"

// Each constructor returns a fresh value so callers may not alias each other.

func suggestions() *models.Suggestions {
	return &models.Suggestions{
		Improvements: []string{
			"Ajoutez des exemples concrets et études de cas pour illustrer les concepts théoriques.",
			"Intégrez des activités interactives pour améliorer l'engagement des étudiants.",
			"Structurez le contenu avec des sections clairement définies et numérotées.",
			"Utilisez un langage plus accessible pour les concepts complexes.",
			"Ajoutez des visuels et diagrammes pour les sections théoriques.",
		},
		Strengths: []string{
			"Excellente couverture des fondements théoriques du sujet.",
			"Organisation chronologique claire et logique.",
			"Références bibliographiques pertinentes et à jour.",
		},
	}
}

func summary() *models.Summary {
	return &models.Summary{
		Title: "Résumé structuré du cours",
		Sections: []models.SummarySection{
			{
				Title:   "Introduction et concepts fondamentaux",
				Content: "Ce cours présente les principes de base du sujet, en établissant le cadre théorique et historique nécessaire à la compréhension des concepts avancés qui suivent.",
				KeyPoints: []string{
					"Origine et évolution historique du domaine",
					"Définitions des termes clés et taxonomie",
					"Présentation des auteurs et théoriciens principaux",
				},
			},
			{
				Title:   "Méthodologie et approches analytiques",
				Content: "Cette section aborde les différentes méthodes d'analyse et approches pratiques pour appliquer les concepts théoriques dans des contextes réels.",
				KeyPoints: []string{
					"Approches quantitatives vs qualitatives",
					"Méthodes de collecte de données",
					"Cadres d'analyse et interprétation des résultats",
				},
			},
			{
				Title:   "Applications et études de cas",
				Content: "Illustrations pratiques des concepts à travers des exemples concrets et des études de cas tirées de la recherche actuelle et de l'industrie.",
				KeyPoints: []string{
					"Étude de cas: Application dans le contexte industriel",
					"Exemples de réussite et d'échec",
					"Perspectives d'évolution et tendances futures",
				},
			},
		},
	}
}

func quiz() *models.Quiz {
	return &models.Quiz{
		Title: "Quiz d'évaluation des connaissances",
		Questions: []models.QuizQuestion{
			{
				Question: "Quelle est la principale caractéristique qui distingue l'approche présentée dans ce cours?",
				Options: []string{
					"Son orientation vers la pratique plutôt que la théorie",
					"Sa méthode d'analyse quantitative exclusive",
					"Son intégration des perspectives historiques et contemporaines",
					"Son rejet des modèles traditionnels",
				},
				CorrectAnswer: 2,
				Explanation:   "L'approche du cours se distingue par son intégration des perspectives historiques et contemporaines, créant un cadre analytique complet.",
			},
			{
				Question: "Selon le cours, quel facteur est considéré comme le plus déterminant dans la réussite de l'application des concepts?",
				Options: []string{
					"Le niveau de formation des praticiens",
					"L'adaptation contextuelle des modèles",
					"L'utilisation d'outils technologiques avancés",
					"Le financement adéquat des projets",
				},
				CorrectAnswer: 1,
				Explanation:   "Le cours souligne que l'adaptation contextuelle des modèles théoriques est cruciale pour leur application réussie dans différents environnements.",
			},
			{
				Question: "Quelle méthode d'analyse est recommandée pour les cas présentant une forte variabilité de données?",
				Options: []string{
					"L'analyse par régression linéaire",
					"L'analyse factorielle",
					"L'approche par étude de cas comparative",
					"L'analyse mixte combinant méthodes qualitatives et quantitatives",
				},
				CorrectAnswer: 3,
				Explanation:   "Le cours recommande une analyse mixte pour les cas à forte variabilité, permettant de capturer à la fois les tendances statistiques et les nuances contextuelles.",
			},
			{
				Question: "Quel auteur est principalement cité comme ayant développé le cadre théorique central du cours?",
				Options: []string{
					"Thompson (2018)",
					"Garcia et Wong (2020)",
					"Leblanc (2019)",
					"Martins et al. (2017)",
				},
				CorrectAnswer: 0,
				Explanation:   "Le cadre théorique central du cours s'appuie principalement sur les travaux de Thompson (2018), qui a établi le paradigme analytique fondamental.",
			},
			{
				Question: "Quelle est la limitation principale de l'approche présentée dans ce cours?",
				Options: []string{
					"Sa complexité de mise en œuvre dans les petites organisations",
					"Son manque de validation empirique",
					"Sa dépendance excessive aux outils numériques",
					"Son applicabilité limitée aux contextes occidentaux",
				},
				CorrectAnswer: 3,
				Explanation:   "Le cours reconnaît que l'approche présentée a une applicabilité limitée aux contextes occidentaux et nécessite des adaptations significatives pour d'autres contextes culturels.",
			},
		},
	}
}

func slides() *models.Slides {
	return &models.Slides{
		Title: "Plan de présentation proposé",
		Slides: []models.Slide{
			{
				Title:            "Introduction et objectifs du cours",
				Content:          "Présentation générale du sujet, des objectifs d'apprentissage et du plan du cours.",
				BulletPoints:     []string{"Contextualisation du sujet dans le domaine", "Objectifs pédagogiques et compétences visées", "Structure et organisation du cours"},
				VisualSuggestion: "Carte mentale montrant les relations entre les différents modules du cours",
			},
			{
				Title:            "Cadre conceptuel et fondements théoriques",
				Content:          "Exposé des théories et concepts fondamentaux qui serviront de base à l'ensemble du cours.",
				BulletPoints:     []string{"Évolution historique des concepts clés", "Définitions et terminologie essentielle", "Modèles théoriques principaux"},
				VisualSuggestion: "Chronologie illustrant l'évolution des concepts théoriques",
			},
			{
				Title:            "Méthodologies et approches pratiques",
				Content:          "Présentation des méthodologies et techniques d'application des concepts théoriques.",
				BulletPoints:     []string{"Méthodes d'analyse et cadres d'application", "Outils et techniques spécifiques", "Étapes du processus méthodologique"},
				VisualSuggestion: "Diagramme de flux illustrant le processus méthodologique",
			},
			{
				Title:            "Étude de cas : Application pratique",
				Content:          "Analyse détaillée d'un cas concret illustrant l'application des concepts et méthodologies.",
				BulletPoints:     []string{"Contexte et problématique du cas", "Application des concepts théoriques", "Résultats obtenus et analyse critique"},
				VisualSuggestion: "Images ou graphiques illustrant les résultats du cas étudié",
			},
			{
				Title:            "Synthèse et perspectives",
				Content:          "Récapitulation des points clés et ouverture sur les développements futurs du domaine.",
				BulletPoints:     []string{"Résumé des concepts essentiels", "Tendances actuelles et futures", "Ressources complémentaires pour approfondir"},
				VisualSuggestion: "Infographie présentant les interconnexions entre les concepts clés du cours",
			},
		},
	}
}

func courseSheet() *models.CourseSheet {
	return &models.CourseSheet{
		Title: "Fiche de cours pour étudiants",
		General: models.CourseInfo{
			CourseName:    "Introduction aux concepts fondamentaux",
			Objectives:    "Maîtriser les concepts de base et développer une compréhension critique du domaine",
			Prerequisites: "Aucun prérequis spécifique, connaissances générales du domaine recommandées",
			Duration:      "12 heures de cours + 6 heures de travaux dirigés",
		},
		KeyConcepts: []models.KeyConcept{
			{
				Concept:    "Concept fondamental A",
				Definition: "Définition concise et claire du concept A, expliquant son importance et ses applications.",
				Examples: []string{
					"Exemple pratique illustrant l'application du concept A dans un contexte réel",
					"Contre-exemple montrant les limites du concept",
				},
			},
			{
				Concept:    "Concept fondamental B",
				Definition: "Définition concise et claire du concept B, expliquant son importance et ses applications.",
				Examples: []string{
					"Exemple pratique illustrant l'application du concept B dans un contexte réel",
					"Illustration des liens entre le concept B et d'autres notions du cours",
				},
			},
			{
				Concept:    "Concept fondamental C",
				Definition: "Définition concise et claire du concept C, expliquant son importance et ses applications.",
				Examples: []string{
					"Exemple pratique illustrant l'application du concept C dans un contexte réel",
					"Cas d'étude simplifié démontrant l'utilité du concept",
				},
			},
		},
		Methodology: "Description concise de la méthodologie présentée dans le cours, avec les étapes principales et les points d'attention.",
		References: []string{
			"Thompson, J. (2018). Titre de l'ouvrage principal. Éditeur.",
			"Garcia, M. & Wong, P. (2020). Titre de l'article clé. Journal, 15(2), 123-145.",
			"Leblanc, S. (2019). Titre du chapitre pertinent. Dans Titre du livre (pp. 45-67). Éditeur.",
		},
	}
}

func tpSheet() *models.TPSheet {
	return &models.TPSheet{
		Title: "Fiche de Travaux Pratiques",
		Metadata: models.TPMetadata{
			Duration:      "3 heures",
			Level:         "Licence 3 / Master 1",
			Prerequisites: "Avoir suivi les modules théoriques 1 et 2 du cours",
		},
		Objectives: []string{
			"Appliquer les concepts théoriques dans un contexte pratique",
			"Développer des compétences d'analyse critique et d'évaluation",
			"Maîtriser les outils et techniques spécifiques présentés en cours",
			"Renforcer la compréhension des méthodologies par l'expérimentation directe",
		},
		Materials: []string{
			"Ordinateur avec logiciel X installé (version 2.0 ou supérieure)",
			"Jeu de données fourni (disponible sur l'ENT)",
			"Documentation technique (distribuée en début de séance)",
			"Calculatrice scientifique (optionnelle)",
		},
		Steps: []models.TPStep{
			{
				Step:         "Étape 1: Préparation et analyse préliminaire (30 min)",
				Instructions: "Examinez le jeu de données fourni et identifiez les variables clés selon la méthodologie présentée en cours. Réalisez une analyse descriptive préliminaire.",
			},
			{
				Step:         "Étape 2: Application de la méthode principale (1h)",
				Instructions: "Appliquez la technique X aux données en suivant le protocole détaillé dans la documentation technique. Documentez chaque étape de votre processus.",
			},
			{
				Step:         "Étape 3: Analyse des résultats (45 min)",
				Instructions: "Interprétez les résultats obtenus en vous référant aux concepts théoriques du cours. Identifiez les patterns et anomalies significatifs.",
			},
			{
				Step:         "Étape 4: Synthèse et préparation du rapport (45 min)",
				Instructions: "Préparez une synthèse de votre démarche et de vos résultats. Formulez des conclusions critiques et proposez des pistes d'amélioration.",
			},
		},
		Questions: []string{
			"En quoi les résultats obtenus confirment-ils ou remettent-ils en question les modèles théoriques présentés en cours?",
			"Quelles sont les limites de la méthode appliquée dans ce contexte spécifique?",
			"Comment pourriez-vous adapter cette approche à un contexte différent (précisez lequel)?",
			"Proposez une amélioration méthodologique qui pourrait renforcer la validité des résultats.",
		},
		EvaluationCriteria: []string{
			"Rigueur méthodologique et respect du protocole (40%)",
			"Qualité de l'analyse et pertinence des interprétations (30%)",
			"Clarté de la présentation des résultats (15%)",
			"Profondeur de la réflexion critique (15%)",
		},
	}
}
