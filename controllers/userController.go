package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ShubhamPatel2305/Vroomify/helpers"
	"github.com/ShubhamPatel2305/Vroomify/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// UserController owns the signup/signin and OTP verification flows. Its
// collaborators are constructed once in main and injected.
type UserController struct {
	users    *mongo.Collection
	tokens   *helpers.TokenMaker
	mailer   *helpers.Mailer
	validate *validator.Validate
}

func NewUserController(users *mongo.Collection, tokens *helpers.TokenMaker, mailer *helpers.Mailer) *UserController {
	return &UserController{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		validate: validator.New(),
	}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (uc *UserController) Signup() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var req models.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"errors": []string{"Invalid request body."}})
			return
		}
		if err := uc.validate.Struct(req); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"errors": validationMessages(err)})
			return
		}

		count, err := uc.users.CountDocuments(ctx, bson.M{"email": req.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"A user with this email already exists."}})
			return
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		user := models.User{
			ID:              primitive.NewObjectID(),
			Name:            req.Name,
			Email:           req.Email,
			PasswordHash:    hash,
			RegistrationOTP: helpers.GenerateOTP(),
			ResetOTP:        helpers.GenerateOTP(),
			State:           models.UserStatePending,
			JoinedAt:        time.Now(),
		}
		user.UserID = user.ID.Hex()

		if _, err := uc.users.InsertOne(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully.",
			"email":   user.Email,
			"user_id": user.UserID,
		})
	}
}

func (uc *UserController) Signin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var req models.SigninRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"errors": []string{"Invalid request body."}})
			return
		}
		if err := uc.validate.Struct(req); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"errors": validationMessages(err)})
			return
		}

		var user models.User
		err := uc.users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid credentials"}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		if !VerifyPassword(req.Password, user.PasswordHash) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid credentials"}})
			return
		}

		if user.State == models.UserStatePending {
			c.JSON(http.StatusPaymentRequired, gin.H{"errors": []string{"This account has not been verified. Please verify your account."}})
			return
		}

		token, err := uc.tokens.GenerateToken(user.UserID, user.Name, user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "User signed in successfully.",
			"token":     token,
			"name":      user.Name,
			"email":     user.Email,
			"joined_at": user.JoinedAt,
			"user_id":   user.UserID,
		})
	}
}

// RequestVerifyOTP rotates the registration OTP and emails it. Starting a
// new flow always regenerates the code.
func (uc *UserController) RequestVerifyOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		var req models.OTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Email is required."}})
			return
		}
		if err := uc.validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
			return
		}

		var user models.User
		err := uc.users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"errors": []string{"No user with this email exists."}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		if user.State == models.UserStateVerified {
			c.JSON(http.StatusPaymentRequired, gin.H{"errors": []string{"User is already verified."}})
			return
		}

		otp := helpers.GenerateOTP()
		_, err = uc.users.UpdateOne(ctx,
			bson.M{"user_id": user.UserID},
			bson.M{"$set": bson.M{"registration_otp": otp}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		if err := uc.mailer.SendOTPEmail(user.Email, otp, "Your account verification code is"); err != nil {
			log.Println("Error sending OTP email:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Failed to send OTP email."}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent to user's email."})
	}
}

// VerifyOTP checks the registration OTP, flips the account to verified and
// signs the user in.
func (uc *UserController) VerifyOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var req models.VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"errors": []string{"Invalid request body."}})
			return
		}
		if err := uc.validate.Struct(req); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"errors": validationMessages(err)})
			return
		}

		var user models.User
		err := uc.users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusPaymentRequired, gin.H{"errors": []string{"Enter a valid OTP."}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		if user.State == models.UserStateVerified {
			c.JSON(http.StatusUnauthorized, gin.H{"errors": []string{"User is already verified."}})
			return
		}

		if req.RegisterOTP != user.RegistrationOTP {
			c.JSON(http.StatusPaymentRequired, gin.H{"errors": []string{"Enter a valid OTP."}})
			return
		}

		// Rotate the consumed OTP so it cannot be replayed.
		_, err = uc.users.UpdateOne(ctx,
			bson.M{"user_id": user.UserID},
			bson.M{"$set": bson.M{
				"state":            models.UserStateVerified,
				"registration_otp": helpers.GenerateOTP(),
			}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		token, err := uc.tokens.GenerateToken(user.UserID, user.Name, user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "User verified successfully.",
			"token":     token,
			"name":      user.Name,
			"joined_at": user.JoinedAt,
			"user_id":   user.UserID,
		})
	}
}

// RequestResetOTP rotates the reset OTP and emails it.
func (uc *UserController) RequestResetOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		var req models.OTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Email is required."}})
			return
		}
		if err := uc.validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
			return
		}

		var user models.User
		err := uc.users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"No user with this email exists."}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		otp := helpers.GenerateOTP()
		_, err = uc.users.UpdateOne(ctx,
			bson.M{"user_id": user.UserID},
			bson.M{"$set": bson.M{"reset_otp": otp}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		if err := uc.mailer.SendOTPEmail(user.Email, otp, "Your password reset code is"); err != nil {
			log.Println("Error sending OTP email:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Failed to send OTP email."}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent to user's email."})
	}
}

// ResetPassword replaces the password hash after checking the reset OTP. The
// new password must differ from the old one.
func (uc *UserController) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var req models.ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body."}})
			return
		}
		if err := uc.validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
			return
		}

		var user models.User
		err := uc.users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"No user with this email exists."}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		if req.ResetOTP != user.ResetOTP {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Enter a valid OTP."}})
			return
		}

		if VerifyPassword(req.Password, user.PasswordHash) {
			c.JSON(http.StatusForbidden, gin.H{"errors": []string{"New password cannot be same as old password."}})
			return
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		_, err = uc.users.UpdateOne(ctx,
			bson.M{"user_id": user.UserID},
			bson.M{"$set": bson.M{
				"password_hash": hash,
				"reset_otp":     helpers.GenerateOTP(),
			}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully."})
	}
}

func (uc *UserController) Profile() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("uid"),
			"name":    c.GetString("name"),
			"email":   c.GetString("email"),
		})
	}
}

func (uc *UserController) EditName() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var req models.EditNameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Name should be atleast 4 characters."}})
			return
		}
		if err := uc.validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Name should be atleast 4 characters."}})
			return
		}

		_, err := uc.users.UpdateOne(ctx,
			bson.M{"user_id": c.GetString("uid")},
			bson.M{"$set": bson.M{"name": req.Name}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully."})
	}
}

// VerifyToken only confirms that the auth middleware let the request
// through.
func (uc *UserController) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
	}
}
