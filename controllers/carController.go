package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ShubhamPatel2305/Vroomify/helpers"
	"github.com/ShubhamPatel2305/Vroomify/models"
	"github.com/ShubhamPatel2305/Vroomify/pinning"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var errImageCount = errors.New("a car must have between 1 and 10 images")

// CarController owns the car record lifecycle: create, list, read, edit and
// delete, with ownership enforced before every read of a single record and
// every mutation.
type CarController struct {
	cars     *mongo.Collection
	pinner   *pinning.Client
	validate *validator.Validate
}

func NewCarController(cars *mongo.Collection, pinner *pinning.Client) *CarController {
	return &CarController{
		cars:     cars,
		pinner:   pinner,
		validate: validator.New(),
	}
}

// AddCar handles the multipart add-car form: validate the text fields,
// filter and pin the image files, persist the new document. This is the only
// path that creates a car.
func (cc *CarController) AddCar() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		var input models.AddCarInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body: " + err.Error()}})
			return
		}
		if err := cc.validate.Struct(input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid multipart form: " + err.Error()}})
			return
		}
		files, err := helpers.CollectImageFiles(form)
		if errors.Is(err, helpers.ErrTooManyImages) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error reading uploaded files"}})
			return
		}
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"At least one image is required"}})
			return
		}

		urls, err := cc.pinner.PinAll(ctx, files)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error uploading files: " + err.Error()}})
			return
		}

		car := models.Car{
			ID:          primitive.NewObjectID(),
			Title:       input.Title,
			Description: input.Description,
			Images:      urls,
			Tags: models.CarTags{
				CarType: input.CarType,
				Company: input.Company,
				Variant: input.Variant,
				Dealer:  input.Dealer,
			},
			CreatedBy:    input.CreatedBy,
			CreatorName:  input.CreatorName,
			CreatorEmail: input.CreatorEmail,
			CreatedAt:    time.Now(),
		}
		car.CarID = car.ID.Hex()

		if _, err := cc.cars.InsertOne(ctx, car); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Failed to add car"}})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Car added successfully",
			"car":     car,
		})
	}
}

// MyCars lists the caller's cars. An empty result is an error status, not an
// empty list: clients distinguish "no cars" from failure by code alone.
func (cc *CarController) MyCars() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		cursor, err := cc.cars.Find(ctx, bson.M{"created_by": c.GetString("uid")})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error fetching cars"}})
			return
		}

		var cars []models.Car
		if err := cursor.All(ctx, &cars); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error fetching cars"}})
			return
		}

		if len(cars) == 0 {
			c.JSON(http.StatusForbidden, gin.H{"message": "No cars found"})
			return
		}

		c.JSON(http.StatusOK, cars)
	}
}

// GetCar returns a single record after the ownership check. In the response
// created_by carries the owner's display name instead of the raw id; the
// client renders it directly.
func (cc *CarController) GetCar() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var car models.Car
		err := cc.cars.FindOne(ctx, bson.M{"car_id": c.Param("id")}).Decode(&car)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Car not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error fetching car"}})
			return
		}

		if car.CreatedBy != c.GetString("uid") {
			c.JSON(http.StatusForbidden, gin.H{"message": "You are not the owner of this car"})
			return
		}

		car.CreatedBy = c.GetString("name")
		c.JSON(http.StatusOK, car)
	}
}

// DeleteCar physically removes an owned record. Pinned images are not
// reclaimed; orphaned content at the provider is an accepted cost.
func (cc *CarController) DeleteCar() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var car models.Car
		err := cc.cars.FindOne(ctx, bson.M{"car_id": c.Param("id")}).Decode(&car)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusForbidden, gin.H{"message": "Car not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error deleting car"}})
			return
		}

		if car.CreatedBy != c.GetString("uid") {
			c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Access denied"})
			return
		}

		if _, err := cc.cars.DeleteOne(ctx, bson.M{"car_id": car.CarID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error deleting car"}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
	}
}

// detailsUpdate compares the proposed values against the stored record and
// returns a $set document holding only the fields that actually change. An
// empty result means the edit mutates nothing.
func detailsUpdate(car models.Car, req models.EditDetailsRequest) bson.M {
	update := bson.M{}
	if req.Title != nil && *req.Title != car.Title {
		update["title"] = *req.Title
	}
	if req.Description != nil && *req.Description != car.Description {
		update["description"] = *req.Description
	}
	if req.Tags != nil && *req.Tags != car.Tags {
		update["tags"] = *req.Tags
	}
	return update
}

// EditDetails updates title, description and/or tags. Tags travel as a keyed
// object; no-change edits are rejected server-side.
func (cc *CarController) EditDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var req models.EditDetailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body: " + err.Error()}})
			return
		}
		if err := cc.validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
			return
		}

		var car models.Car
		err := cc.cars.FindOne(ctx, bson.M{"car_id": req.CarID}).Decode(&car)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusPaymentRequired, gin.H{"errors": []string{"Car not found"}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error updating car details"}})
			return
		}

		if car.CreatedBy != c.GetString("uid") {
			c.JSON(http.StatusForbidden, gin.H{"message": "You are not the owner of this car"})
			return
		}

		update := detailsUpdate(car, req)
		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"At least one field (title, description, or tags) must be changed."}})
			return
		}

		if _, err := cc.cars.UpdateOne(ctx, bson.M{"car_id": car.CarID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error updating car details"}})
			return
		}

		if err := cc.cars.FindOne(ctx, bson.M{"car_id": car.CarID}).Decode(&car); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error updating car details"}})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Car details updated successfully",
			"car":     car,
		})
	}
}

// validateImageCount enforces the 1..10 bound on the final images list.
// Called before anything is pinned, so a bad request does not leave
// orphaned content at the provider.
func validateImageCount(total int) error {
	if total < 1 || total > helpers.MaxImageCount {
		return errImageCount
	}
	return nil
}

// mergeImageLists appends freshly uploaded URLs to the retained ones,
// keeping the retained-then-uploaded order the client expects.
func mergeImageLists(retained, uploaded []string) []string {
	merged := make([]string, 0, len(retained)+len(uploaded))
	merged = append(merged, retained...)
	merged = append(merged, uploaded...)
	return merged
}

func imagesUnchanged(retained, stored []string, newFiles int) bool {
	if newFiles > 0 || len(retained) != len(stored) {
		return false
	}
	for i := range retained {
		if retained[i] != stored[i] {
			return false
		}
	}
	return true
}

// EditImages replaces the images list with retained existing URLs plus any
// newly uploaded files, in that order, as a single document update.
func (cc *CarController) EditImages() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid multipart form: " + err.Error()}})
			return
		}

		carID := c.PostForm("car_id")
		if carID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"CarID is required"}})
			return
		}

		var retained []string
		if raw := c.PostForm("existing_images"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &retained); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"existing_images must be a JSON array of URLs"}})
				return
			}
		}

		var car models.Car
		err = cc.cars.FindOne(ctx, bson.M{"car_id": carID}).Decode(&car)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusPaymentRequired, gin.H{"errors": []string{"Car not found"}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error updating car images"}})
			return
		}

		if car.CreatedBy != c.GetString("uid") {
			c.JSON(http.StatusForbidden, gin.H{"message": "You are not the owner of this car"})
			return
		}

		files, err := helpers.CollectImageFiles(form)
		if errors.Is(err, helpers.ErrTooManyImages) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error reading uploaded files"}})
			return
		}

		if imagesUnchanged(retained, car.Images, len(files)) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"No changes detected. Please modify the images before submitting."}})
			return
		}

		if err := validateImageCount(len(retained) + len(files)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
			return
		}

		uploaded, err := cc.pinner.PinAll(ctx, files)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error uploading files: " + err.Error()}})
			return
		}

		images := mergeImageLists(retained, uploaded)

		if _, err := cc.cars.UpdateOne(ctx, bson.M{"car_id": car.CarID}, bson.M{"$set": bson.M{"images": images}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Error updating car images"}})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Car images updated successfully",
			"images":  images,
		})
	}
}
