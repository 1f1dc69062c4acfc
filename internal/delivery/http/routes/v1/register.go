package v1

import (
	"log"

	"talent-pipeline/internal/config"
	"talent-pipeline/internal/database"
	"talent-pipeline/internal/delivery/http/handler"
	"talent-pipeline/internal/infrastructure/cache"
	"talent-pipeline/internal/repository"
	"talent-pipeline/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

// Register builds the v1 dependency graph: repositories over the shared DB,
// usecases over the repositories, handlers over the usecases.
func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	requisitionRepo := repository.NewPostgresRequisitionRepository(deps.DB)
	candidateRepo := repository.NewPostgresCandidateRepository(deps.DB)
	applicationRepo := repository.NewPostgresApplicationRepository(deps.DB)
	activityRepo := repository.NewPostgresActivityRepository(deps.DB)
	stepRepo := repository.NewPostgresProcessStepRepository(deps.DB)
	blacklistRepo := repository.NewPostgresBlacklistRepository(deps.DB)
	referenceRepo := repository.NewPostgresReferenceRepository(deps.DB)

	matchUC := usecase.NewMatchUsecase(
		requisitionRepo,
		candidateRepo,
		applicationRepo,
		blacklistRepo,
		referenceRepo,
		deps.Cache,
		deps.Config.Matching.DictionaryTTL,
		deps.Config.Matching.EnrichmentWorkers,
		deps.Logger,
	)

	pipelineUC := usecase.NewPipelineUsecase(
		activityRepo,
		applicationRepo,
		requisitionRepo,
		stepRepo,
		candidateRepo,
		transitionLock(deps),
		deps.Logger,
	)

	matchHandler := handler.NewMatchHandler(matchUC)
	pipelineHandler := handler.NewPipelineHandler(pipelineUC)

	matchHandler.RegisterRoutes(r)
	pipelineHandler.RegisterRoutes(r)
}

// transitionLock picks the cross-replica redis lock when redis is up and
// the in-process fallback otherwise.
func transitionLock(deps Deps) usecase.TransitionLock {
	if deps.Cache.Available() {
		return usecase.NewRedisTransitionLock(deps.Cache, deps.Config.Pipeline.TransitionLockTTL)
	}
	if deps.Logger != nil {
		deps.Logger.Printf("pipeline lock=memory reason=redis_unavailable")
	}
	return usecase.NewMemoryTransitionLock()
}
