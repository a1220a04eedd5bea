package services

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/BerylCAtieno/opticours-api/internal/auth"
	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/BerylCAtieno/opticours-api/internal/repository"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is lowered by tests.
var passwordCost = bcrypt.DefaultCost

type SessionService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Session, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.Session, error)
	Logout(ctx context.Context) error
	// CurrentSession reports the persisted session. A corrupted session is
	// discarded and reported as absent.
	CurrentSession(ctx context.Context) (*models.Session, bool)
	// Authenticate resolves a bearer token against the current session.
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type sessionService struct {
	accounts repository.AccountRepository
	sessions repository.SessionRepository
	tokens   *auth.TokenIssuer
	validate *validator.Validate
	logger   *utils.Logger
}

func NewSessionService(accounts repository.AccountRepository, sessions repository.SessionRepository, tokens *auth.TokenIssuer, logger *utils.Logger) SessionService {
	return &sessionService{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func (s *sessionService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, utils.NewBadRequestError("Email, mot de passe et nom sont requis; l'email doit contenir @")
	}

	existing, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Failed to look up account", "error", err)
		return nil, utils.NewInternalError("Failed to register account")
	}
	if existing != nil {
		return nil, utils.NewDuplicateAccountError("Cet email est déjà utilisé")
	}

	hash, err := bcrypt.GenerateFromPassword(passwordDigest(req.Password), passwordCost)
	if err != nil {
		s.logger.Error("Failed to hash password", "error", err)
		return nil, utils.NewInternalError("Failed to register account")
	}

	account := &models.Account{
		User: models.User{
			ID:          utils.GenerateUUID(),
			Email:       req.Email,
			Name:        req.Name,
			Institution: req.Institution,
			CreatedAt:   time.Now().UTC(),
		},
		PasswordHash: string(hash),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, utils.NewDuplicateAccountError("Cet email est déjà utilisé")
		}
		s.logger.Error("Failed to create account", "error", err)
		return nil, utils.NewInternalError("Failed to register account")
	}

	s.logger.Info("Account registered", "user_id", account.ID)

	return s.open(ctx, account.User)
}

func (s *sessionService) Login(ctx context.Context, req *models.LoginRequest) (*models.Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, utils.NewBadRequestError("Email et mot de passe sont requis")
	}

	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Failed to look up account", "error", err)
		return nil, utils.NewInternalError("Failed to log in")
	}
	if account == nil {
		return nil, utils.NewInvalidCredentialsError("Email ou mot de passe incorrect")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), passwordDigest(req.Password)); err != nil {
		return nil, utils.NewInvalidCredentialsError("Email ou mot de passe incorrect")
	}

	s.logger.Info("User logged in", "user_id", account.ID)

	return s.open(ctx, account.User)
}

// passwordDigest feeds bcrypt a fixed-length input; bcrypt rejects
// passwords longer than 72 bytes.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// open issues a fresh token for user and makes it the only persisted session.
func (s *sessionService) open(ctx context.Context, user models.User) (*models.Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", "error", err, "user_id", user.ID)
		return nil, utils.NewInternalError("Failed to open session")
	}

	profile, err := json.Marshal(user)
	if err != nil {
		return nil, utils.NewInternalError("Failed to open session")
	}

	if err := s.sessions.Save(ctx, string(profile), token); err != nil {
		s.logger.Error("Failed to persist session", "error", err, "user_id", user.ID)
		return nil, utils.NewInternalError("Failed to open session")
	}

	return &models.Session{User: user, Token: token}, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		s.logger.Error("Failed to clear session", "error", err)
		return utils.NewInternalError("Failed to log out")
	}
	return nil
}

func (s *sessionService) CurrentSession(ctx context.Context) (*models.Session, bool) {
	stored, err := s.sessions.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to read session", "error", err)
		return nil, false
	}
	if stored == nil {
		return nil, false
	}

	var user models.User
	if err := json.Unmarshal([]byte(stored.Profile), &user); err != nil || user.ID == "" {
		s.discard(ctx, "undecodable profile")
		return nil, false
	}

	subject, err := s.tokens.Parse(stored.Token)
	if err != nil || subject != user.ID {
		s.discard(ctx, "token does not verify")
		return nil, false
	}

	return &models.Session{User: user, Token: stored.Token}, true
}

func (s *sessionService) discard(ctx context.Context, reason string) {
	s.logger.Warn("Discarding malformed session", "reason", reason)
	if err := s.sessions.Clear(ctx); err != nil {
		s.logger.Error("Failed to clear malformed session", "error", err)
	}
}

func (s *sessionService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, utils.NewUnauthorizedError("Authentification requise")
	}

	session, ok := s.CurrentSession(ctx)
	if !ok || session.Token != token {
		return nil, utils.NewUnauthorizedError("Session invalide ou expirée")
	}

	return &session.User, nil
}
