package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
)

var seedMenuItems = []models.MenuItem{
	{ItemNumber: 1, Name: "Jollof Rice with Chicken", Description: "Smoky Nigerian jollof rice served with grilled chicken", Price: 3500, Category: models.CategoryMainCourse, Available: true},
	{ItemNumber: 2, Name: "Fried Rice with Turkey", Description: "Savory fried rice with vegetables and turkey", Price: 4000, Category: models.CategoryMainCourse, Available: true},
	{ItemNumber: 3, Name: "Pounded Yam with Egusi", Description: "Soft pounded yam with rich egusi soup and assorted meat", Price: 4500, Category: models.CategoryMainCourse, Available: true},
	{ItemNumber: 4, Name: "Spaghetti Bolognese", Description: "Italian pasta with rich minced meat sauce", Price: 3000, Category: models.CategoryMainCourse, Available: true},
	{ItemNumber: 5, Name: "Grilled Fish with Plantain", Description: "Fresh grilled tilapia with fried plantain and sauce", Price: 5000, Category: models.CategoryMainCourse, Available: true},
	{ItemNumber: 6, Name: "Amala with Ewedu", Description: "Traditional amala with ewedu and gbegiri soup", Price: 3500, Category: models.CategoryMainCourse, Available: true},
	{ItemNumber: 7, Name: "Moi Moi", Description: "Steamed bean pudding with fish", Price: 800, Category: models.CategorySides, Available: true},
	{ItemNumber: 8, Name: "Fried Plantain (Dodo)", Description: "Sweet fried ripe plantain", Price: 500, Category: models.CategorySides, Available: true},
	{ItemNumber: 9, Name: "Coleslaw", Description: "Fresh vegetable coleslaw", Price: 400, Category: models.CategorySides, Available: true},
	{ItemNumber: 10, Name: "Pepper Soup", Description: "Spicy goat meat pepper soup", Price: 1500, Category: models.CategorySides, Available: true},
	{ItemNumber: 11, Name: "Chapman", Description: "Nigerian cocktail mocktail with fruits", Price: 1200, Category: models.CategoryDrinks, Available: true},
	{ItemNumber: 12, Name: "Zobo", Description: "Chilled hibiscus drink with ginger", Price: 500, Category: models.CategoryDrinks, Available: true},
	{ItemNumber: 13, Name: "Fresh Orange Juice", Description: "Freshly squeezed orange juice", Price: 800, Category: models.CategoryDrinks, Available: true},
	{ItemNumber: 14, Name: "Bottled Water", Description: "Premium bottled water (75cl)", Price: 200, Category: models.CategoryDrinks, Available: true},
	{ItemNumber: 15, Name: "Soft Drinks", Description: "Coca-Cola, Fanta, or Sprite", Price: 350, Category: models.CategoryDrinks, Available: true},
	{ItemNumber: 16, Name: "Puff Puff", Description: "Sweet Nigerian doughnut balls", Price: 500, Category: models.CategoryDesserts, Available: true},
	{ItemNumber: 17, Name: "Chin Chin", Description: "Crunchy fried pastry snack", Price: 400, Category: models.CategoryDesserts, Available: true},
	{ItemNumber: 18, Name: "Ice Cream", Description: "Vanilla ice cream with chocolate topping", Price: 1000, Category: models.CategoryDesserts, Available: true},
}

// SeedMenu upserts the menu catalog by item number. Safe to re-run.
func SeedMenu(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := db.Collection("menuitems")

	for _, item := range seedMenuItems {
		item.CreatedAt = time.Now()
		filter := bson.M{"itemNumber": item.ItemNumber}
		update := bson.M{"$set": bson.M{
			"itemNumber":  item.ItemNumber,
			"name":        item.Name,
			"description": item.Description,
			"price":       item.Price,
			"category":    item.Category,
			"available":   item.Available,
		}, "$setOnInsert": bson.M{
			"createdAt": item.CreatedAt,
		}}

		_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			log.Println("SeedMenu: upsert error for item", item.ItemNumber, ":", err)
			return err
		}
		log.Printf("SeedMenu: %d. %s - %s", item.ItemNumber, item.Name, models.FormatNaira(item.Price))
	}

	log.Printf("SeedMenu: seeded %d menu items", len(seedMenuItems))
	return nil
}
