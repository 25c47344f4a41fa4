package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//extraction
	MinCharsPerPage    = 20 //below this average the text layer is considered empty and OCR kicks in
	PageExtractTimeout = 10 * time.Second
	OCRRasterDPI       = 150
	IngestTimeout      = 120 * time.Second

	//chunking
	MaxChunkSize       = 800 //characters, paragraph boundaries permitting
	MaxStoredTextBytes = 200 << 10
	DescriptionLength  = 200
	EmptyDescription   = "No description available"
	PlaceholderChunk   = "(no extractable text)"

	//scoring weights - additive so a match can never demote a document
	PhraseBonus       = 10
	TagTermBonus      = 5
	CategoryTermBonus = 4
	TextTermBonus     = 2
	AuthorityBonus    = 15
	FormatBonus       = 10
	MinQueryTermLen   = 3

	//retrieval defaults handed to the chat collaborator
	DefaultMaxResults      = 3
	DefaultMaxContextChars = 4000

	MaxWorkerCount    int64 = 10
	MinWorkerCount    int64 = 1
	IdleWorkerTimeout       = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore      = 0
	RedisDocumentStore = 1

	//redis timeouts
	RedisJobStoreTTL      = 24 * time.Hour
	RedisDocumentStoreTTL = 0 //documents never expire, they are deleted explicitly
)

var (
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	AuthToken     = os.Getenv("CAREKB_AUTH_TOKEN")
	NoAuthBypass  = AuthToken == "" //local dev without a token
)
