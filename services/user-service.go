package services

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"time"

	"github.com/CyberSaikat/task-management-soft/logging"
	"github.com/CyberSaikat/task-management-soft/models"
	"github.com/CyberSaikat/task-management-soft/utils"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserService is the identity store. Passwords are always bcrypt-hashed
// before persisting; email dispatch goes through a circuit breaker and is
// fire-and-forget with respect to the already-persisted entity.
type UserService struct {
	UserCollection *mongo.Collection
	JWTService     *JWTService
	EmailBreaker   *gobreaker.CircuitBreaker
}

func NewUserService(userCollection *mongo.Collection, jwtService *JWTService, emailBreaker *gobreaker.CircuitBreaker) *UserService {
	return &UserService{
		UserCollection: userCollection,
		JWTService:     jwtService,
		EmailBreaker:   emailBreaker,
	}
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return models.User{}, models.NotFound("user not found")
	}
	return user, nil
}

func (s *UserService) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return models.User{}, models.NotFound("user not found")
	}
	return user, nil
}

// RegisterUser creates a self-registered account with the regular user role.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password, passwordConfirmation string) error {
	if name == "" || email == "" || password == "" {
		return models.Validation("name, email and password are required")
	}
	if !emailRegex.MatchString(email) {
		return models.Validation("invalid email address")
	}
	if password != passwordConfirmation {
		return models.Validation("password and confirmation do not match")
	}
	if err := utils.ValidatePassword(password); err != nil {
		return models.Validation(err.Error())
	}

	var existing models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		return models.Conflict("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	now := time.Now()
	user := models.User{
		Name:      html.EscapeString(name),
		Email:     email,
		Password:  string(hashedPassword),
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.UserCollection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %v", err)
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: User registered with email %s", email)
	return nil
}

// Authenticate checks credentials and returns the user with a session token.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, string, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return models.User{}, "", models.Unauthorized("user with this email does not exist")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, "", models.Unauthorized("password is incorrect")
	}

	token, err := s.JWTService.GenerateAuthToken(user.Email, user.Role)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to generate token: %v", err)
	}

	user.Password = ""
	return user, token, nil
}

// ListUsers returns the user directory scoped to the actor: admins see all
// non-admin users, regular users see non-admin users excluding themselves.
func (s *UserService) ListUsers(ctx context.Context, actor models.User) ([]models.User, error) {
	filter := bson.M{"role": bson.M{"$ne": models.RoleAdmin}}
	if !actor.IsAdmin() {
		filter["_id"] = bson.M{"$ne": actor.ID}
	}

	cursor, err := s.UserCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users: %v", err)
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// AddUser creates an account on behalf of an admin with a generated
// temporary password, emailed to the new user. The returned flag reports
// whether the welcome email went out; a failed email never rolls back the
// insert.
func (s *UserService) AddUser(ctx context.Context, name, email, role, baseURL string) (models.User, bool, error) {
	if name == "" || email == "" || role == "" {
		return models.User{}, false, models.Validation("missing required fields")
	}
	if !emailRegex.MatchString(email) {
		return models.User{}, false, models.Validation("invalid email address")
	}
	if !models.ValidRole(role) {
		return models.User{}, false, models.Validation("invalid role")
	}

	var existing models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		return models.User{}, false, models.Conflict("email already exists")
	}

	tempPassword := utils.GenerateRandomPassword()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to hash password: %v", err)
	}

	now := time.Now()
	user := models.User{
		Name:      html.EscapeString(name),
		Email:     email,
		Password:  string(hashedPassword),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := s.UserCollection.InsertOne(ctx, user)
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to save user: %v", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	emailSent := true
	body := utils.WelcomeEmailBody(name, email, tempPassword, baseURL)
	if err := s.sendEmail(email, "Welcome to Our Platform", body); err != nil {
		emailSent = false
		logging.Logger.Warnf("Event ID: WELCOME_EMAIL_FAILED, Description: Welcome email to %s failed: %v", email, err)
	}

	user.Password = ""
	return user, emailSent, nil
}

// UpdateUser applies an admin edit. Omitted fields keep their prior value.
func (s *UserService) UpdateUser(ctx context.Context, id primitive.ObjectID, name, email, role string) error {
	if email != "" {
		if !emailRegex.MatchString(email) {
			return models.Validation("invalid email address")
		}
		var existing models.User
		err := s.UserCollection.FindOne(ctx, bson.M{"email": email, "_id": bson.M{"$ne": id}}).Decode(&existing)
		if err == nil {
			return models.Conflict("email already exists")
		}
	}
	if role != "" && !models.ValidRole(role) {
		return models.Validation("invalid role")
	}

	update := bson.M{"updated_at": time.Now()}
	if name != "" {
		update["name"] = html.EscapeString(name)
	}
	if email != "" {
		update["email"] = email
	}
	if role != "" {
		update["role"] = role
	}

	result, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}
	if result.MatchedCount == 0 {
		return models.NotFound("user not found")
	}

	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.UserCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %v", err)
	}
	if result.DeletedCount == 0 {
		return models.NotFound("user not found")
	}

	logging.Logger.Infof("Event ID: USER_DELETED, Description: User %s deleted", id.Hex())
	return nil
}

// SendPasswordResetLink stores a reset key on the user and emails the link.
func (s *UserService) SendPasswordResetLink(ctx context.Context, email, baseURL string) error {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return models.NotFound("user not found")
	}

	resetKey := utils.GenerateResetKey()
	expiry := time.Now().Add(1 * time.Hour)

	_, err = s.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{"reset_key": resetKey, "reset_key_expires": expiry},
	})
	if err != nil {
		return fmt.Errorf("failed to store reset key: %v", err)
	}

	url := fmt.Sprintf("%s/reset-password/%s", baseURL, resetKey)
	body := utils.PasswordResetEmailBody(user.Name, url)
	if err := s.sendEmail(user.Email, "Password Reset", body); err != nil {
		return fmt.Errorf("failed to send password reset email: %v", err)
	}

	return nil
}

// ResetPassword consumes a reset key and stores the re-hashed password.
func (s *UserService) ResetPassword(ctx context.Context, resetKey, newPassword string) error {
	if resetKey == "" || newPassword == "" {
		return models.Validation("please fill in all fields")
	}

	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"reset_key": resetKey}).Decode(&user)
	if err != nil {
		return models.NotFound("user not found")
	}

	if user.ResetKeyExpires.Before(time.Now()) {
		return models.Validation("reset key has expired")
	}

	if err := utils.ValidatePassword(newPassword); err != nil {
		return models.Validation(err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	_, err = s.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"password": string(hashedPassword), "updated_at": time.Now()},
		"$unset": bson.M{"reset_key": "", "reset_key_expires": ""},
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}

	return nil
}

func (s *UserService) sendEmail(to, subject, body string) error {
	_, err := s.EmailBreaker.Execute(func() (interface{}, error) {
		return nil, utils.SendEmail(to, subject, body)
	})
	return err
}
