package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"booksaetong/internal/app"
	"booksaetong/internal/domain/entity"
	"booksaetong/internal/resilience/retry"
	productUC "booksaetong/internal/usecase/product"
)

var (
	seedAreas = []string{
		"서울 마포구", "서울 강남구", "서울 성북구", "부산 해운대구", "대구 중구", "인천 연수구", "광주 동구",
	}
	seedTitles = []string{
		"토지", "태백산맥", "혼불", "아리랑", "소년이 온다", "채식주의자", "82년생 김지영", "데미안", "어린 왕자", "코스모스",
	}
	seedCategories = []string{"소설", "에세이", "인문", "과학", "만화", "어린이"}
)

type seedOptions struct {
	count       int
	sellers     int
	seed        uint64
	parallelism int
}

func newSeedCmd(c *cli) *cobra.Command {
	opts := &seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the local catalogue with sample listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.count < 1 {
				return fmt.Errorf("--count must be positive")
			}
			cat, err := app.OpenCatalogue(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer func() { _ = cat.Close() }()
			return runSeed(cmd.Context(), cat, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&opts.count, "count", "n", 100, "number of listings to create")
	cmd.Flags().IntVar(&opts.sellers, "sellers", 5, "number of sellers to spread listings over")
	cmd.Flags().Uint64Var(&opts.seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	cmd.Flags().IntVar(&opts.parallelism, "parallelism", 4, "concurrent inserts")
	return cmd
}

// runSeed creates the sellers, then the listings. Inputs are drawn up front so the
// result only depends on the seed.
func runSeed(ctx context.Context, cat *app.Catalogue, opts *seedOptions, out io.Writer) error {
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))

	sellers := make([]*entity.User, max(opts.sellers, 1))
	for i := range sellers {
		u := &entity.User{
			Email:    fmt.Sprintf("seller-%d-%d@booksaetong.example", opts.seed, i),
			Nickname: fmt.Sprintf("헌책방 %d", i+1),
			Address:  seedAreas[rng.IntN(len(seedAreas))],
		}
		if err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
			return cat.Service.Users.Create(ctx, u)
		}); err != nil {
			return fmt.Errorf("create seller: %w", err)
		}
		sellers[i] = u
	}

	inputs := make([]productUC.CreateInput, opts.count)
	for i := range inputs {
		seller := sellers[rng.IntN(len(sellers))]
		inputs[i] = productUC.CreateInput{
			UserID:   seller.ID,
			Title:    fmt.Sprintf("%s (%d판)", seedTitles[rng.IntN(len(seedTitles))], rng.IntN(20)+1),
			Category: seedCategories[rng.IntN(len(seedCategories))],
			Price:    int64(rng.IntN(50)+1) * 500,
			Address:  seller.Address,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.parallelism, 1))
	for _, in := range inputs {
		g.Go(func() error {
			return retry.WithBackoff(gctx, retry.DBConfig(), func() error {
				_, err := cat.Service.Create(gctx, in)
				return err
			})
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("create listing: %w", err)
	}

	total, err := cat.Service.Repo.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created %d listings from %d sellers (catalogue now holds %d)\n", len(inputs), len(sellers), total)
	return nil
}
