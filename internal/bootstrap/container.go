package bootstrap

import (
	"log"
	"time"

	"esg-questionnaire-be/internal/config"
	"esg-questionnaire-be/internal/controller"
	"esg-questionnaire-be/internal/pkg/logger"
	"esg-questionnaire-be/internal/repository/unitofwork"
	"esg-questionnaire-be/internal/service"
	"esg-questionnaire-be/pkg/embedding"
	"esg-questionnaire-be/pkg/llm/factory"
	"esg-questionnaire-be/pkg/rag"
	"esg-questionnaire-be/pkg/vision"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController       controller.ISessionController
	UploadController        controller.IUploadController
	QuestionnaireController controller.IQuestionnaireController
	ChatController          controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider, err := embedding.NewEmbeddingProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.EmbeddingModel,
		providerBaseURL(cfg, cfg.Ai.EmbeddingProvider),
		cfg.Ai.DashScopeAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		providerBaseURL(cfg, cfg.Ai.LLMProvider),
		cfg.Ai.DashScopeAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Vision fallback only works against DashScope multimodal models
	var visionExtractor *vision.Extractor
	if cfg.Ai.DashScopeAPIKey != "" {
		visionProvider := vision.NewDashScopeVisionProvider(
			cfg.Ai.DashScopeBaseURL,
			cfg.Ai.DashScopeAPIKey,
			cfg.Vision.Model,
		)
		visionExtractor = vision.NewExtractor(
			vision.NewChromeRenderer(),
			visionProvider,
			time.Duration(cfg.Vision.TimeoutSeconds)*time.Second,
			sysLogger,
		)
	} else {
		log.Println("[INFO] Vision fallback disabled: no DashScope API key")
	}

	// 4. RAG Core
	retriever := rag.NewRetriever(embeddingProvider, uowFactory, sysLogger)
	company := rag.NewCompanyResolver(retriever, llmProvider, sysLogger)
	engine := rag.NewEngine(retriever, llmProvider, company, visionExtractor, cfg.Rag.TopK, sysLogger)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.ExtractTopic)
	sessionService := service.NewSessionService(uowFactory, sysLogger)
	questionnaireService := service.NewQuestionnaireService(uowFactory, engine, cfg.Rag.ModuleTopK, sysLogger)
	ingestionService := service.NewIngestionService(
		uowFactory,
		embeddingProvider,
		llmProvider,
		retriever,
		sessionService,
		questionnaireService,
		publisherService,
		cfg.Rag.ChunkSize,
		cfg.Rag.ChunkOverlap,
		sysLogger,
	)
	chatService := service.NewChatService(
		uowFactory,
		llmProvider,
		retriever,
		company,
		questionnaireService,
		cfg.Rag.ChatTopK,
		sysLogger,
	)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ExtractTopic, questionnaireService, sysLogger)

	// 6. Controllers
	return &Container{
		SessionController:       controller.NewSessionController(sessionService),
		UploadController:        controller.NewUploadController(ingestionService, cfg.App.UploadDir),
		QuestionnaireController: controller.NewQuestionnaireController(questionnaireService),
		ChatController:          controller.NewChatController(chatService),

		ConsumerService: consumerService,
	}
}

func providerBaseURL(cfg *config.Config, providerType string) string {
	if providerType == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.DashScopeBaseURL
}
