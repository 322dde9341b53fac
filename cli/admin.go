package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"PixBot/ledger"
	"PixBot/store"
	"PixBot/vip"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables and seed the treasure event",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Migrate(db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Schema is up to date")
		return nil
	},
}

var grantVIPCmd = &cobra.Command{
	Use:   "grant-vip <user> <tier> [days]",
	Short: "Grant a VIP tier, for days or forever when days is 0 or omitted",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tier, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("tier must be a number: %w", err)
		}
		days := 0
		if len(args) == 3 {
			if days, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("days must be a number: %w", err)
			}
		}
		return grantVIP(cmd.Context(), cmd.OutOrStdout(), db, args[0], tier, days)
	},
}

func grantVIP(ctx context.Context, w io.Writer, db *gorm.DB, userID string, tier, days int) error {
	sub, err := vip.New(db, time.Now).Grant(ctx, userID, tier, days)
	if err != nil {
		return err
	}
	expiry := "never"
	if sub.ExpiresAt != nil {
		expiry = sub.ExpiresAt.Format(time.RFC3339)
	}
	fmt.Fprintf(w, "👑 %s is now %s (expires: %s)\n", userID, vip.Name(sub.Tier), expiry)
	return nil
}

var addCoinsCmd = &cobra.Command{
	Use:   "add-coins <user> <amount>",
	Short: "Credit PixCoins to a wallet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("amount must be a number: %w", err)
		}
		return addCoins(cmd.Context(), cmd.OutOrStdout(), db, args[0], amount)
	},
}

func addCoins(ctx context.Context, w io.Writer, db *gorm.DB, userID string, amount int64) error {
	l := ledger.New(db)
	if err := l.Credit(ctx, userID, amount); err != nil {
		return err
	}
	acc, err := l.Get(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "💰 %s wallet: %d\n", userID, acc.Coins)
	return nil
}

var interestCmd = &cobra.Command{
	Use:   "interest",
	Short: "Apply one bank interest tick now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyInterest(cmd.Context(), cmd.OutOrStdout(), db, cfg.InterestRate)
	},
}

func applyInterest(ctx context.Context, w io.Writer, db *gorm.DB, rate float64) error {
	n, err := ledger.New(db).ApplyInterest(ctx, rate)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "🏦 Applied x%.4f interest to %d account(s)\n", rate, n)
	return nil
}

var topCmd = &cobra.Command{
	Use:   "top [n]",
	Short: "Print the richest accounts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 10
		if len(args) == 1 {
			var err error
			if n, err = strconv.Atoi(args[0]); err != nil || n <= 0 {
				return fmt.Errorf("n must be a positive number")
			}
		}
		return printTop(cmd.Context(), cmd.OutOrStdout(), db, n)
	},
}

func printTop(ctx context.Context, w io.Writer, db *gorm.DB, n int) error {
	accs, err := ledger.New(db).TopWealth(ctx, n)
	if err != nil {
		return err
	}
	if len(accs) == 0 {
		fmt.Fprintln(w, "No accounts yet.")
		return nil
	}
	for idx, acc := range accs {
		fmt.Fprintf(w, "%2d. %-20s wallet %10d  bank %10d  total %10d\n",
			idx+1, acc.UserID, acc.Coins, acc.Bank, acc.Coins+acc.Bank)
	}
	return nil
}
