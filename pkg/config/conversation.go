package config

import "time"

type ConversationConfig struct {
	StoreBackend        string
	StoreTTL            time.Duration
	MaxTurns            int
	KeepRecent          int
	MemoryResults       int
	KnowledgeResults    int
	MemoryPreviewLen    int
	KnowledgePreviewLen int
	DefaultUserID       string
}

// MemoryConfig controls the conversation-memory vector collection.
type MemoryConfig struct {
	// Retention of zero keeps records forever.
	Retention     time.Duration
	PruneInterval time.Duration
}

func loadConversationConfig() ConversationConfig {
	return ConversationConfig{
		StoreBackend:        getEnv("CONVERSATION_STORE", "memory"),
		StoreTTL:            getEnvDuration("CONVERSATION_TTL", 0),
		MaxTurns:            getEnvInt("CONVERSATION_MAX_TURNS", 20),
		KeepRecent:          getEnvInt("CONVERSATION_KEEP_RECENT", 18),
		MemoryResults:       getEnvInt("CONTEXT_MEMORY_RESULTS", 2),
		KnowledgeResults:    getEnvInt("CONTEXT_KNOWLEDGE_RESULTS", 3),
		MemoryPreviewLen:    getEnvInt("CONTEXT_MEMORY_PREVIEW", 200),
		KnowledgePreviewLen: getEnvInt("CONTEXT_KNOWLEDGE_PREVIEW", 150),
		DefaultUserID:       getEnv("PROFILE_DEFAULT_USER", "user_001"),
	}
}

func loadMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Retention:     getEnvDuration("MEMORY_RETENTION", 0),
		PruneInterval: getEnvDuration("MEMORY_PRUNE_INTERVAL", time.Hour),
	}
}
