package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Menu categories, in the order they are rendered to the visitor.
const (
	CategoryMainCourse = "Main Course"
	CategorySides      = "Sides"
	CategoryDrinks     = "Drinks"
	CategoryDesserts   = "Desserts"
)

// CategoryDisplayOrder fixes the section order of the rendered menu.
var CategoryDisplayOrder = []string{
	CategoryMainCourse,
	CategorySides,
	CategoryDrinks,
	CategoryDesserts,
}

type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemNumber  int                `bson:"itemNumber" json:"itemNumber"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Available   bool               `bson:"available" json:"available"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
