package cmd

import (
	"sync"

	"reservoir/worker"
	"reservoir/worker/accrual"
	"reservoir/worker/pricefeed"
	"reservoir/worker/sentinel"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "reservoir job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		db := provideDatabase()

		propertyStore := providePropertyStore(db)
		poolStore := providePoolStore(db)
		positionStore := providePositionStore(db)
		priceStore := providePriceStore(db)
		transactionStore := provideTransactionStore(db)

		priceService := providePriceService(db, priceStore, transactionStore)
		healthService := provideHealthService(poolStore, priceService)

		accruer := accrual.New(provideConfig(), db, poolStore)
		if err := accruer.Start(); err != nil {
			logrus.WithError(err).Fatal("start accruer failed")
		}
		defer accruer.Stop()

		workers := []worker.Worker{
			sentinel.New(db, cfg.Sentinel.Capacity, propertyStore, poolStore, positionStore, healthService),
			pricefeed.New(provideConfig(), poolStore, priceStore, priceService),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
