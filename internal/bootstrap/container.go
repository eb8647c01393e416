package bootstrap

import (
	"log"

	"memoscribe-be/internal/config"
	"memoscribe-be/internal/controller"
	"memoscribe-be/internal/pkg/logger"
	"memoscribe-be/internal/repository/implementation"
	"memoscribe-be/internal/service"
	"memoscribe-be/pkg/extract"
	"memoscribe-be/pkg/generation"
	"memoscribe-be/pkg/llm/openai"
	pkgNats "memoscribe-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController       controller.INoteController
	LogController        controller.ILogController
	TaskController       controller.ITaskController
	PreferenceController controller.IPreferenceController
	DocumentController   controller.IDocumentController
	AssistantController  controller.IAssistantController

	// Background services, run from main.
	SyncService service.ISyncService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus for the sync pipeline.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// Audit and mutation events stream to NATS; a dead broker degrades to
	// local-only operation.
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	provider := openai.NewProvider(openai.Config{
		BaseURL:        cfg.LLM.BaseURL,
		APIKey:         cfg.LLM.APIKey,
		ChatModel:      cfg.LLM.ChatModel,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		Enabled:        cfg.LLM.Enabled,
	})
	if provider.IsAvailable() {
		log.Printf("[INFO] LLM provider ready: %s (chat=%s embed=%s)", cfg.LLM.BaseURL, cfg.LLM.ChatModel, cfg.LLM.EmbeddingModel)
	} else {
		log.Printf("[INFO] LLM provider disabled, running with deterministic fallbacks")
	}

	generator := generation.NewGenerator(provider, sysLogger)
	extractor := extract.NewFileExtractor()

	// Repositories
	embeddingRepo := implementation.NewEmbeddingRepository(db)
	noteRepo := implementation.NewNoteRepository(db)
	logRepo := implementation.NewLogRepository(db)
	documentRepo := implementation.NewDocumentRepository(db)
	taskRepo := implementation.NewTaskRepository(db)
	preferenceRepo := implementation.NewPreferenceRepository(db)
	chatRepo := implementation.NewChatRepository(db)

	// Services
	publisherService := service.NewPublisherService(cfg.App.SyncTopic, pubSub)
	indexService := service.NewIndexService(embeddingRepo, provider, sysLogger)
	retrievalService := service.NewRetrievalService(
		indexService,
		noteRepo,
		logRepo,
		documentRepo,
		taskRepo,
		preferenceRepo,
		cfg.Privacy,
		cfg.LLM.Enabled,
		sysLogger,
	)
	assistantService := service.NewAssistantService(retrievalService, generator, chatRepo, natsPub, sysLogger)
	noteService := service.NewNoteService(noteRepo, publisherService, natsPub, sysLogger)
	logService := service.NewLogService(logRepo, publisherService, natsPub, sysLogger)
	taskService := service.NewTaskService(taskRepo, publisherService, natsPub, sysLogger)
	preferenceService := service.NewPreferenceService(preferenceRepo, retrievalService, publisherService, natsPub, sysLogger)
	documentService := service.NewDocumentService(documentRepo, publisherService, natsPub, sysLogger)

	syncService := service.NewSyncService(
		pubSub,
		cfg.App.SyncTopic,
		noteRepo,
		logRepo,
		documentRepo,
		taskRepo,
		preferenceRepo,
		indexService,
		retrievalService,
		generator,
		extractor,
		natsPub,
		sysLogger,
	)

	return &Container{
		NoteController:       controller.NewNoteController(noteService),
		LogController:        controller.NewLogController(logService),
		TaskController:       controller.NewTaskController(taskService),
		PreferenceController: controller.NewPreferenceController(preferenceService),
		DocumentController:   controller.NewDocumentController(documentService, cfg.App.UploadDir),
		AssistantController:  controller.NewAssistantController(assistantService),
		SyncService:          syncService,
		Logger:               sysLogger,
	}
}
