package services

import (
	"context"
	"time"

	"project-tracker/internal/domain"
	"project-tracker/internal/errors"

	"github.com/sirupsen/logrus"
)

// Messages returned in AuthResult
const (
	MsgUsernameExists     = "Username already exists"
	MsgEmailExists        = "Email already exists"
	MsgRegistered         = "User registered successfully"
	MsgInvalidCredentials = "Invalid username or password"
	MsgLoginSuccessful    = "Login successful"
)

// RegisterUserService creates accounts with unique username and email
type RegisterUserService struct {
	users  UserStore
	hasher Hasher
	tokens TokenIssuer
	audit  AuditSink
	newID  func() string
	now    func() time.Time
	log    logrus.FieldLogger
}

// NewRegisterUserService creates a new RegisterUserService instance
func NewRegisterUserService(deps Dependencies) *RegisterUserService {
	deps = deps.withDefaults()
	return &RegisterUserService{
		users:  deps.Users,
		hasher: deps.Hasher,
		tokens: deps.Tokens,
		audit:  deps.Audit,
		newID:  deps.NewID,
		now:    deps.Now,
		log:    deps.Logger,
	}
}

// Execute registers the user. Username is checked before email, so a request
// duplicating both reports the username.
func (s *RegisterUserService) Execute(ctx context.Context, cmd RegisterUserCommand) (*AuthResult, error) {
	taken, err := s.users.ExistsByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return conflictResult("username", cmd.Username), nil
	}

	taken, err = s.users.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return conflictResult("email", cmd.Email), nil
	}

	hash, err := s.hasher.Encode(cmd.Password)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(s.newID(), cmd.Username, cmd.Email, hash, s.now())
	saved, err := s.users.Save(ctx, &user)
	if err != nil {
		// A concurrent registration can pass the checks above and lose on the
		// unique index instead.
		if appErr, ok := errors.AsAppError(err); ok && appErr.IsType(errors.ErrorTypeConflict) {
			field, _ := appErr.GetContext("field")
			if field == "email" {
				return conflictResult("email", cmd.Email), nil
			}
			return conflictResult("username", cmd.Username), nil
		}
		return nil, err
	}

	token, err := s.tokens.Issue(saved.ID, saved.Username)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditUserRegistered, saved.ID)
	s.log.WithField("user_id", saved.ID).Info("user registered")

	return &AuthResult{User: saved, Token: token, Success: true, Message: MsgRegistered}, nil
}

func conflictResult(field, value string) *AuthResult {
	message := MsgUsernameExists
	if field == "email" {
		message = MsgEmailExists
	}
	return &AuthResult{
		Success: false,
		Message: message,
		Failure: errors.NewConflictError(field, value, message),
	}
}

// LoginUserService authenticates users by username and password
type LoginUserService struct {
	users  UserStore
	hasher Hasher
	tokens TokenIssuer
	audit  AuditSink
	log    logrus.FieldLogger
}

// NewLoginUserService creates a new LoginUserService instance
func NewLoginUserService(deps Dependencies) *LoginUserService {
	deps = deps.withDefaults()
	return &LoginUserService{
		users:  deps.Users,
		hasher: deps.Hasher,
		tokens: deps.Tokens,
		audit:  deps.Audit,
		log:    deps.Logger,
	}
}

// Execute logs the user in. Unknown usernames and wrong passwords produce the
// same failure result.
func (s *LoginUserService) Execute(ctx context.Context, cmd LoginUserCommand) (*AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, cmd.Username)
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}
	if user == nil || !s.hasher.Matches(cmd.Password, user.PasswordHash) {
		return invalidCredentials(), nil
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditUserLogin, user.ID)
	s.log.WithField("user_id", user.ID).Info("user logged in")

	return &AuthResult{User: user, Token: token, Success: true, Message: MsgLoginSuccessful}, nil
}

func invalidCredentials() *AuthResult {
	return &AuthResult{
		Success: false,
		Message: MsgInvalidCredentials,
		Failure: errors.NewUnauthenticatedError(MsgInvalidCredentials),
	}
}
