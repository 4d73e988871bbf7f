package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarTags is the fixed tag set attached to every listing. The whole object
// is always read and written as a unit; there is no positional tag contract.
type CarTags struct {
	CarType string `bson:"car_type" json:"car_type" validate:"required,min=1"`
	Company string `bson:"company" json:"company" validate:"required,min=1"`
	Variant string `bson:"variant" json:"variant" validate:"required,oneof=low mid top"`
	Dealer  string `bson:"dealer" json:"dealer" validate:"required,min=1"`
}

// Car is a listing document. CreatedBy never changes after creation;
// CreatorName and CreatorEmail are snapshots of the owner at creation time
// and are not kept in sync with later user edits.
type Car struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	CarID        string             `bson:"car_id" json:"car_id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Images       []string           `bson:"images" json:"images"`
	Tags         CarTags            `bson:"tags" json:"tags"`
	CreatedBy    string             `bson:"created_by" json:"created_by"`
	CreatorName  string             `bson:"creator_name" json:"creator_name"`
	CreatorEmail string             `bson:"creator_email" json:"creator_email"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// AddCarInput carries the text fields of the add-car multipart form. Image
// parts are handled separately.
type AddCarInput struct {
	Title        string `form:"title" validate:"required,min=1"`
	Description  string `form:"description" validate:"required,min=10"`
	CarType      string `form:"car_type" validate:"required,min=1"`
	Company      string `form:"company" validate:"required,min=1"`
	Variant      string `form:"variant" validate:"required,oneof=low mid top"`
	Dealer       string `form:"dealer" validate:"required,min=1"`
	CreatedBy    string `form:"created_by" validate:"required,min=1"`
	CreatorName  string `form:"creator_name" validate:"required,min=1"`
	CreatorEmail string `form:"creator_email" validate:"required,email"`
}

// EditDetailsRequest updates title, description and/or tags. Absent fields
// are left untouched. Tags, when present, must be the complete keyed object.
type EditDetailsRequest struct {
	CarID       string   `json:"car_id" validate:"required"`
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=10"`
	Tags        *CarTags `json:"tags,omitempty"`
}
