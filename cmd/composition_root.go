package cmd

import (
	"packhouse/internal/adapters/in/http"
	"packhouse/internal/adapters/out/postgres"
	"packhouse/internal/adapters/out/postgres/classificationrepo"
	"packhouse/internal/core/application/usecases/commands"
	"packhouse/internal/core/application/usecases/queries"
	"packhouse/internal/jobs"
	"packhouse/internal/pkg/logging"
	"packhouse/internal/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.LedgerMetrics
	logger     *zap.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, ledgerMetrics *metrics.LedgerMetrics, logger *zap.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    ledgerMetrics,
		logger:     logger,
	}
}

func (c *CompositionRoot) classificationUoWFactory() commands.ClassificationUoWFactory {
	return FuncClassificationUoWFactory(func() commands.ClassificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) commandLogger() *zap.Logger {
	return logging.Component(c.logger, "commands")
}

func (c *CompositionRoot) CreateCreateClassificationCommandHandler() commands.CreateClassificationCommandHandler {
	return commands.NewCreateClassificationCommandHandler(c.classificationUoWFactory(), c.metrics, c.commandLogger())
}

func (c *CompositionRoot) CreateAddPalletCommandHandler() commands.AddPalletCommandHandler {
	return commands.NewAddPalletCommandHandler(c.classificationUoWFactory(), c.metrics, c.commandLogger())
}

func (c *CompositionRoot) CreateAddWasteCommandHandler() commands.AddWasteCommandHandler {
	return commands.NewAddWasteCommandHandler(c.classificationUoWFactory(), c.metrics, c.commandLogger())
}

func (c *CompositionRoot) CreateAddReturnCommandHandler() commands.AddReturnCommandHandler {
	return commands.NewAddReturnCommandHandler(c.classificationUoWFactory(), c.metrics, c.commandLogger())
}

func (c *CompositionRoot) CreateAdjustCategoryWeightsCommandHandler() commands.AdjustCategoryWeightsCommandHandler {
	return commands.NewAdjustCategoryWeightsCommandHandler(c.classificationUoWFactory(), c.metrics, c.commandLogger())
}

func (c *CompositionRoot) CreateSetPricesCommandHandler() commands.SetPricesCommandHandler {
	return commands.NewSetPricesCommandHandler(c.classificationUoWFactory(), c.metrics, c.commandLogger())
}

func (c *CompositionRoot) CreateFinalizeClassificationCommandHandler() commands.FinalizeClassificationCommandHandler {
	return commands.NewFinalizeClassificationCommandHandler(c.classificationUoWFactory(), c.metrics, c.commandLogger())
}

func (c *CompositionRoot) CreateGetClassificationSummaryQueryHandler() queries.GetClassificationSummaryQueryHandler {
	return queries.NewGetClassificationSummaryQueryHandler(classificationrepo.NewGormClassificationRepository(c.gormDB, nil))
}

func (c *CompositionRoot) CreateGetOrderProgressQueryHandler() queries.GetOrderProgressQueryHandler {
	return queries.NewGetOrderProgressQueryHandler(classificationrepo.NewGormClassificationRepository(c.gormDB, nil))
}

func (c *CompositionRoot) CreateGetOpenClassificationsQueryHandler() queries.GetOpenClassificationsQueryHandler {
	return queries.NewGetOpenClassificationsQueryHandler(c.gormDB)
}

// CreateServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateServer() *http.Server {
	create := c.CreateCreateClassificationCommandHandler()
	pallet := c.CreateAddPalletCommandHandler()
	waste := c.CreateAddWasteCommandHandler()
	ret := c.CreateAddReturnCommandHandler()
	adjust := c.CreateAdjustCategoryWeightsCommandHandler()
	prices := c.CreateSetPricesCommandHandler()
	finalize := c.CreateFinalizeClassificationCommandHandler()

	return http.NewServer(http.Handlers{
		CreateClassification:   &create,
		AddPallet:              &pallet,
		AddWaste:               &waste,
		AddReturn:              &ret,
		AdjustCategoryWeights:  &adjust,
		SetPrices:              &prices,
		FinalizeClassification: &finalize,
		ClassificationSummary:  c.CreateGetClassificationSummaryQueryHandler(),
		OrderProgress:          c.CreateGetOrderProgressQueryHandler(),
		OpenClassifications:    c.CreateGetOpenClassificationsQueryHandler(),
	}, logging.Component(c.logger, "http"))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.NewReadyForFinalizationJob(
		c.CreateGetOpenClassificationsQueryHandler(),
		c.CreateGetClassificationSummaryQueryHandler(),
		c.metrics,
		c.config.ReadySweepSchedule,
		c.logger,
	))
}

type FuncClassificationUoWFactory func() commands.ClassificationUoW

func (f FuncClassificationUoWFactory) Create() commands.ClassificationUoW {
	return f()
}
