package main

import (
	"flag"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/bot"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/catalog"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/config"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/database"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/handlers"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/ledger"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/middleware"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/payment"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/store"
)

func main() {
	seed := flag.Bool("seed", false, "seed the menu collection and exit")
	flag.Parse()

	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureMenuIndexes(db); err != nil {
		log.Printf("⚠️ menu index warning: %v", err)
	}
	if err := database.EnsureSessionIndexes(db); err != nil {
		log.Printf("⚠️ session index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}

	if *seed {
		if err := database.SeedMenu(db); err != nil {
			log.Fatal(err)
		}
		return
	}

	menuStore := store.NewMongoMenuStore(db)
	orderStore := store.NewMongoOrderStore(db)
	sessionStore := store.NewMongoSessionStore(db)

	menuCatalog := catalog.New(menuStore)
	orderLedger := ledger.New(orderStore, sessionStore, menuStore)

	gateway := payment.NewPaystackGateway(config.AppEnv.PaystackSecretKey, config.AppEnv.GatewayTimeout)
	bridge := payment.NewBridge(orderLedger, gateway, config.AppEnv.BaseURL+"/api/payment/callback")

	engine := bot.NewEngine(sessionStore, menuCatalog, orderLedger, bridge)

	visitorSession := middleware.VisitorSession(config.AppEnv.SessionSecret, config.AppEnv.SessionTTL)

	r := gin.Default()

	r.GET("/health", handlers.Health(db))

	chat := r.Group("/api/chat")
	chat.Use(visitorSession)
	{
		chat.GET("/init", handlers.InitChat(engine))
		chat.POST("/message", handlers.ProcessMessage(engine))
		chat.GET("/session", handlers.GetSessionState(engine))
	}

	pay := r.Group("/api/payment")
	{
		pay.POST("/initialize", visitorSession, handlers.InitializePayment(engine))
		pay.GET("/callback", handlers.PaymentCallback(engine))
		pay.GET("/verify/:reference", handlers.VerifyPayment(bridge))
		pay.GET("/public-key", handlers.PaystackPublicKey(config.AppEnv.PaystackPublicKey))
	}

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
