// @title           Care Knowledge Base API
// @version         1.0
// @description     Document ingestion and knowledge retrieval for the care chat widget
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/data/store"
	"github.com/rkampati/carekb/internal/domain/docModel"
	jobmodel "github.com/rkampati/carekb/internal/domain/jobModel"
	"github.com/rkampati/carekb/internal/extract"
	"github.com/rkampati/carekb/internal/handlers"
	"github.com/rkampati/carekb/internal/ingest"
	"github.com/rkampati/carekb/internal/job"
	"github.com/rkampati/carekb/internal/search"
	"github.com/rkampati/carekb/internal/server"
	"github.com/rkampati/carekb/internal/worker"
	"github.com/rkampati/carekb/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job store and document store, redis first with in-memory fallback
	redisJobStore := store.GetRedisJobStore(serviceContext)
	redisDocumentStore := store.GetRedisDocumentStore(serviceContext)

	var jobStore jobmodel.JobStore
	var documentStore docModel.DocumentStore
	if redisJobStore == nil || redisDocumentStore == nil {
		logger.Error("Redis stores are offline")
		if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
			logger.Error("In-memory fallback disabled. Shutting down.")
			return
		}
		jobStore = store.InitInMemoryJobStore()
		documentStore = store.InitInMemoryDocumentStore()
	} else {
		jobStore = redisJobStore
		documentStore = redisDocumentStore
	}

	logger.Info("Starting job service")
	service := job.InitJobService(job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	})

	extractor := extract.NewExtractor()
	ingestService := ingest.NewService(extractor, documentStore)
	searchService := search.NewService(documentStore)

	handlers.InitJobHandler(service, searchService, documentStore)

	//init worker pool
	worker.InitServices(service, ingestService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
