package cmd

import (
	"encoding/json"

	"reservoir/core"
	"reservoir/pkg/id"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// governing command for pools
var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "manage lending pools",
}

var addPoolCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"a"},
	Short:   "Create a lending pool",
	Long: `params->
	symbol: pool symbol
	asset: underlying asset id
	share_symbol: share token symbol, default R+symbol
	precision: amount precision of the asset
	init_exchange_rate: exchange rate of an empty pool
	reserve_factor: interest share kept as reserves
	liquidation_bonus: seize discount for liquidators
	borrow_cap: borrow cap, 0 for unlimited
	collateral_factor: borrow power per unit of collateral
	liquidation_threshold: collateral factor at which a position seizes
	close_factor: repayable debt share per liquidation
	base_rate: borrow rate at zero utilization
	slope1: rate slope below optimal utilization
	slope2: rate slope above optimal utilization
	optimal_utilization: the kink of the rate curve`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		poolStore := providePoolStore(database)
		ledgerStore := provideLedgerStore(database)
		transactionStore := provideTransactionStore(database)
		poolService := providePoolService(database, poolStore, ledgerStore, transactionStore)

		req := core.AddPoolReq{}
		req.TraceID = id.GenTraceID()

		user, e := cmd.Flags().GetString("user")
		if e != nil {
			panic("invalid user")
		}
		if user == "" && len(cfg.Admins) > 0 {
			user = cfg.Admins[0]
		}
		req.UserID = user

		symbol, e := cmd.Flags().GetString("symbol")
		if e != nil || symbol == "" {
			panic("invalid symbol")
		}
		req.Symbol = symbol

		assetID, e := cmd.Flags().GetString("asset")
		if e != nil || assetID == "" {
			panic("invalid assetID")
		}
		req.AssetID = assetID

		shareSymbol, e := cmd.Flags().GetString("share_symbol")
		if e != nil {
			panic("invalid shareSymbol")
		}
		req.ShareSymbol = shareSymbol

		precision, e := cmd.Flags().GetInt32("precision")
		if e != nil {
			panic("invalid precision")
		}
		req.Precision = precision

		flag, e := cmd.Flags().GetString("init_exchange_rate")
		if e != nil {
			panic("invalid flag")
		}
		ie, _ := decimal.NewFromString(flag)
		req.InitExchangeRate = ie

		flag, e = cmd.Flags().GetString("reserve_factor")
		if e != nil {
			panic("invalid flag")
		}
		rf, e := decimal.NewFromString(flag)
		if e != nil {
			panic(e)
		}
		req.ReserveFactor = rf

		flag, e = cmd.Flags().GetString("liquidation_bonus")
		if e != nil {
			panic("invalid flag")
		}
		lb, e := decimal.NewFromString(flag)
		if e != nil {
			panic(e)
		}
		req.LiquidationBonus = lb

		flag, e = cmd.Flags().GetString("borrow_cap")
		if e != nil {
			panic("invalid flag")
		}
		bc, e := decimal.NewFromString(flag)
		if e != nil {
			panic(e)
		}
		req.BorrowCap = bc

		flag, e = cmd.Flags().GetString("collateral_factor")
		if e != nil {
			panic("invalid flag")
		}
		cf, e := decimal.NewFromString(flag)
		if e != nil {
			panic(e)
		}
		req.CollateralFactor = cf

		flag, e = cmd.Flags().GetString("liquidation_threshold")
		if e != nil {
			panic("invalid flag")
		}
		lt, e := decimal.NewFromString(flag)
		if e != nil {
			panic(e)
		}
		req.LiquidationThreshold = lt

		flag, e = cmd.Flags().GetString("close_factor")
		if e != nil {
			panic("invalid flag")
		}
		clf, e := decimal.NewFromString(flag)
		if e != nil {
			panic(e)
		}
		req.CloseFactor = clf

		flag, e = cmd.Flags().GetString("base_rate")
		if e != nil {
			panic("invalid flag")
		}
		br, e := decimal.NewFromString(flag)
		if e != nil {
			panic(e)
		}
		req.BaseRate = br

		flag, e = cmd.Flags().GetString("slope1")
		if e != nil {
			panic("invalid flag")
		}
		s1, e := decimal.NewFromString(flag)
		if e != nil {
			panic(e)
		}
		req.Slope1 = s1

		flag, e = cmd.Flags().GetString("slope2")
		if e != nil {
			panic("invalid flag")
		}
		s2, e := decimal.NewFromString(flag)
		if e != nil {
			panic(e)
		}
		req.Slope2 = s2

		{
			if kink, err := cmd.Flags().GetString("optimal_utilization"); err != nil {
				panic("invalid optimal_utilization")
			} else if value, err := decimal.NewFromString(kink); err != nil {
				panic(err)
			} else {
				req.OptimalUtilization = value
			}
		}

		transaction, err := poolService.AddPool(ctx, &req)
		if err != nil {
			cmd.PrintErrln("add pool error:", err)
			return
		}

		data, _ := json.MarshalIndent(transaction, "", "  ")
		cmd.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(poolCmd)
	poolCmd.AddCommand(addPoolCmd)

	addPoolCmd.Flags().String("user", "", "operator recorded in the journal, default the first admin")
	addPoolCmd.Flags().String("symbol", "", "pool symbol")
	addPoolCmd.Flags().String("asset", "", "asset id")
	addPoolCmd.Flags().String("share_symbol", "", "share token symbol")
	addPoolCmd.Flags().Int32("precision", 8, "amount precision")
	addPoolCmd.Flags().String("init_exchange_rate", "1", "initial exchange rate")
	addPoolCmd.Flags().String("reserve_factor", "0.1", "reserve factor")
	addPoolCmd.Flags().String("liquidation_bonus", "0.05", "liquidation bonus")
	addPoolCmd.Flags().String("borrow_cap", "0", "borrow cap")
	addPoolCmd.Flags().String("collateral_factor", "0.75", "collateral factor")
	addPoolCmd.Flags().String("liquidation_threshold", "0.8", "liquidation threshold")
	addPoolCmd.Flags().String("close_factor", "0.5", "close factor")
	addPoolCmd.Flags().String("base_rate", "0.025", "base rate")
	addPoolCmd.Flags().String("slope1", "0.2", "slope below the kink")
	addPoolCmd.Flags().String("slope2", "3", "slope above the kink")
	addPoolCmd.Flags().String("optimal_utilization", "0.8", "optimal utilization")
}
