package main

import (
	"context"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/embedding"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm/agentx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm/memoryx"
	aiopenai "github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/providers/openai"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/speech"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx/vectorxmem"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx/vectorxsql"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/auth"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/config"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/contextsrv"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/conversationapi"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/conversationinfra"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/conversationsrv"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/export"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/fsx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/fsx/fsxlocal"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/fsx/fsxs3"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/logx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/metrics"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/travel/knowledge"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/travel/memory"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/travel/memory/memorysrv"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/travel/profile"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/travel/tools"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	knowledgeCollection = "travel_knowledge"
	memoryCollection    = "user_conversations"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	Vectors    vectorx.Backend
	FileSystem fsx.FileSystem
	Provider   *aiopenai.OpenAIProvider
	Metrics    *metrics.Metrics

	// Domain
	Knowledge   *knowledge.Base
	Memories    *memory.Store
	Profiles    *profile.Static
	Synthesizer *speech.Synthesizer
	Service     *conversationsrv.ConversationService
	Exporter    *export.Exporter

	// API
	Handlers       *conversationapi.ConversationHandlers
	Tokens         *auth.JWTService
	AuthMiddleware *auth.Middleware

	// Background Services
	Pruner *memorysrv.Pruner
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	logx.Info("🔧 Initializing dependency container...")

	c := &Container{
		Config:  cfg,
		Metrics: metrics.New(),
	}

	c.initInfrastructure(ctx)
	c.initDomain(ctx)
	c.initAPI()

	logx.Info("✅ Container initialized successfully")
	return c
}

func (c *Container) initInfrastructure(ctx context.Context) {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Vector storage
	switch c.Config.Vector.Backend {
	case config.VectorBackendPostgres:
		db, err := sqlx.Connect("postgres", c.Config.Database.PostgresDSN())
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
		db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
		db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
		c.DB = db

		backend, err := vectorxsql.New(ctx, db, vectorxsql.DialectPostgres)
		if err != nil {
			logx.Fatalf("Failed to prepare vector tables: %v", err)
		}
		c.Vectors = backend
		logx.Info("✅ Postgres vector store connected")

	case config.VectorBackendSQLite:
		backend, err := vectorxsql.OpenSQLite(ctx, c.Config.Database.SQLitePath)
		if err != nil {
			logx.Fatalf("Failed to open SQLite vector store: %v", err)
		}
		c.Vectors = backend
		logx.Infof("✅ SQLite vector store opened (path: %s)", c.Config.Database.SQLitePath)

	default:
		c.Vectors = vectorxmem.New()
		logx.Info("✅ In-memory vector store configured")
	}

	// 2. Redis Connection
	if c.Config.Redis.Enabled {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Address(),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if _, err := c.Redis.Ping(ctx).Result(); err != nil {
			logx.Fatalf("Failed to connect to Redis: %v", err)
		}
		logx.Info("✅ Redis connected")
	}

	// 3. Export storage
	c.initFileStorage(ctx)

	// 4. Model provider
	c.Provider = newProvider(c.Config)
	logx.Infof("✅ OpenAI provider configured (model: %s)", c.Config.OpenAI.ChatModel)

	logx.Info("✅ Infrastructure initialized")
}

func newProvider(cfg *config.Config) *aiopenai.OpenAIProvider {
	return aiopenai.New(aiopenai.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		ChatModel:      cfg.OpenAI.ChatModel,
		EmbeddingModel: cfg.OpenAI.EmbeddingModel,
		TTSModel:       cfg.OpenAI.TTSModel,
		Voice:          cfg.OpenAI.TTSVoice,
		Timeout:        cfg.OpenAI.RequestTimeout,
	})
}

func (c *Container) initFileStorage(ctx context.Context) {
	switch c.Config.Storage.Mode {
	case "s3":
		cfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(cfg), c.Config.Storage.AWSBucket, c.Config.Storage.Prefix)
		logx.Infof("✅ S3 file system configured (bucket: %s, region: %s)", c.Config.Storage.AWSBucket, c.Config.Storage.AWSRegion)

	default:
		localFS, err := fsxlocal.NewLocalFileSystem(c.Config.Storage.UploadDir)
		if err != nil {
			logx.Fatalf("Failed to initialize local file system: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("✅ Local file system configured (path: %s)", localFS.GetBasePath())
	}
}

func (c *Container) embedder() embedding.Embedder {
	if c.Config.Vector.Embedder == "hash" {
		logx.Warnf("Using hashed embeddings (dim %d); retrieval quality is reduced", c.Config.Vector.HashDimension)
		return embedding.NewHashed(c.Config.Vector.HashDimension)
	}
	if key := c.Config.OpenAI.EmbeddingAPIKey; key != "" && key != c.Config.OpenAI.APIKey {
		cfg := *c.Config
		cfg.OpenAI.APIKey = key
		return newProvider(&cfg)
	}
	return c.Provider
}

func (c *Container) initDomain(ctx context.Context) {
	logx.Info("📦 Initializing travel services...")

	embedder := c.embedder()

	entries, err := knowledge.Default()
	if err != nil {
		logx.Fatalf("Failed to load knowledge base: %v", err)
	}
	c.Knowledge = knowledge.New(vectorx.NewCollection(knowledgeCollection, embedder, c.Vectors), entries)
	if added, err := c.Knowledge.Index(ctx); err != nil {
		logx.Errorf("Failed to index knowledge base: %v", err)
	} else {
		logx.Infof("✅ Knowledge base ready (%d entries, %d newly indexed)", c.Knowledge.Size(), added)
	}

	c.Memories = memory.New(vectorx.NewCollection(memoryCollection, embedder, c.Vectors))
	c.Pruner = memorysrv.NewPruner(c.Memories, c.Config.Memory.Retention, c.Config.Memory.PruneInterval)

	c.Profiles, err = profile.Default()
	if err != nil {
		logx.Fatalf("Failed to load user profiles: %v", err)
	}

	if c.Config.Speech.Enabled {
		c.Synthesizer = speech.NewSynthesizer(c.Provider)
	} else {
		c.Synthesizer = speech.NewSynthesizer(nil)
		logx.Warn("Speech synthesis disabled")
	}

	registry := tools.New(
		tools.NewWeatherClient(tools.WeatherConfig{
			APIKey:  c.Config.Weather.APIKey,
			BaseURL: c.Config.Weather.BaseURL,
			Timeout: c.Config.Weather.Timeout,
		}),
		tools.NewCatalog(),
	)
	if c.Config.Weather.APIKey == "" {
		logx.Warn("WEATHER_API_KEY not set; weather tools will report an error")
	}

	agent := agentx.New(c.Provider,
		agentx.WithTools(registry),
		agentx.WithOptions(
			llm.WithTemperature(float32(c.Config.OpenAI.Temperature)),
			llm.WithMaxTokens(c.Config.OpenAI.MaxTokens),
		),
	)

	conv := c.Config.Conversation
	assembler := contextsrv.NewAssembler(c.Memories, c.Knowledge, c.Profiles, contextsrv.Config{
		MemoryResults:       conv.MemoryResults,
		KnowledgeResults:    conv.KnowledgeResults,
		MemoryPreviewLen:    conv.MemoryPreviewLen,
		KnowledgePreviewLen: conv.KnowledgePreviewLen,
	})

	c.Service = conversationsrv.NewConversationService(c.conversationStore(), agent,
		conversationsrv.WithAssembler(assembler),
		conversationsrv.WithMemory(c.Memories),
		conversationsrv.WithKnowledge(c.Knowledge),
		conversationsrv.WithSynthesizer(c.Synthesizer, c.Config.Speech.MaxLength),
		conversationsrv.WithMetrics(c.Metrics),
		conversationsrv.WithWindow(memoryx.Window{Max: conv.MaxTurns, Keep: conv.KeepRecent}),
		conversationsrv.WithSystemPrompt(conversationsrv.SystemPrompt(c.Knowledge.Size())),
		conversationsrv.WithDefaultUser(conv.DefaultUserID),
	)
	c.Exporter = export.NewExporter(c.FileSystem)

	logx.Info("✅ Travel services initialized")
}

func (c *Container) conversationStore() conversation.Store {
	if c.Config.Conversation.StoreBackend == "redis" {
		logx.Info("✅ Conversations stored in Redis")
		return conversationinfra.NewRedisStore(c.Redis, c.Config.Conversation.StoreTTL)
	}
	return conversationinfra.NewMemoryStore()
}

func (c *Container) initAPI() {
	c.Handlers = conversationapi.NewConversationHandlers(c.Service, c.Synthesizer, c.Exporter, c.Config.Conversation.DefaultUserID)

	if c.Config.Auth.Enabled() {
		c.Tokens = auth.NewJWTServiceFromConfig(c.Config.Auth)
		c.AuthMiddleware = auth.NewMiddleware(c.Tokens)
		logx.Info("✅ Bearer-token authentication enabled")
	}
}

// StartBackgroundServices starts background workers
func (c *Container) StartBackgroundServices(ctx context.Context) {
	if c.Pruner.Enabled() {
		go c.Pruner.Start(ctx)
		logx.Infof("✅ Memory pruner started (retention: %s)", c.Config.Memory.Retention)
	}
}

// Cleanup closes all connections
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.Vectors != nil {
		if err := c.Vectors.Close(); err != nil {
			logx.Errorf("Error closing vector store: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		}
	}

	logx.Info("✅ Cleanup completed")
}
