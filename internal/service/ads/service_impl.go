package ads

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adsurf/adsurf-api/internal/domain"
	"github.com/adsurf/adsurf-api/internal/platform/logger"
	"github.com/adsurf/adsurf-api/internal/store"
)

// TxRunner executes fn within a database transaction. Production code wraps
// store.RunInTransaction; tests can supply a runner that passes a nil
// transaction straight through to mock stores.
type TxRunner func(ctx context.Context, fn store.TxFn) error

// NewTxRunner returns a TxRunner bound to the given database handle.
func NewTxRunner(db *sql.DB) TxRunner {
	return func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, db, fn)
	}
}

// Verify interface compliance at compile time
var _ AdService = (*adServiceImpl)(nil)

// adServiceImpl implements the AdService interface.
type adServiceImpl struct {
	adStore   store.AdStore
	userStore store.UserStore
	runTx     TxRunner
	logger    *slog.Logger
}

// NewAdService creates a new AdService implementation.
func NewAdService(
	adStore store.AdStore,
	userStore store.UserStore,
	runTx TxRunner,
	logger *slog.Logger,
) AdService {
	if adStore == nil {
		panic("adStore cannot be nil")
	}
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if runTx == nil {
		panic("runTx cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &adServiceImpl{
		adStore:   adStore,
		userStore: userStore,
		runTx:     runTx,
		logger:    logger.With(slog.String("component", "ad_service")),
	}
}

// Create implements AdService.Create.
func (s *adServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	title, description, targetURL string,
	reward int64,
) (*domain.Ad, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ad, err := domain.NewAd(ownerID, title, description, targetURL, reward)
	if err != nil {
		return nil, err
	}

	if err := s.adStore.Create(ctx, ad); err != nil {
		return nil, err
	}

	log.Info("ad created",
		slog.String("ad_id", ad.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return ad, nil
}

// ListPublished implements AdService.ListPublished.
func (s *adServiceImpl) ListPublished(ctx context.Context) ([]*domain.Ad, error) {
	return s.adStore.ListPublished(ctx)
}

// ListMine implements AdService.ListMine.
func (s *adServiceImpl) ListMine(ctx context.Context, ownerID uuid.UUID) ([]*domain.Ad, error) {
	return s.adStore.ListByOwner(ctx, ownerID)
}

// Surf implements AdService.Surf.
// The ledger insert, budget debit and wallet credit commit or roll back
// together; the conditional debit is what makes concurrent surfs against a
// nearly-exhausted budget safe.
func (s *adServiceImpl) Surf(ctx context.Context, adID, viewerID uuid.UUID) (*SurfResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ad, err := s.adStore.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}

	if !ad.Published {
		return nil, ErrAdNotSurfable
	}

	surf, err := domain.NewSurf(ad, viewerID)
	if err != nil {
		return nil, err
	}

	var result SurfResult
	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		adStore := s.adStore.WithTx(tx)
		userStore := s.userStore.WithTx(tx)

		// The ledger insert goes first: a duplicate surf aborts before any
		// balance moves.
		if err := adStore.RecordSurf(ctx, surf); err != nil {
			return err
		}
		if err := adStore.DebitBalance(ctx, ad.ID, surf.Reward); err != nil {
			return err
		}
		if err := userStore.CreditSurfingBalance(ctx, viewerID, surf.Reward); err != nil {
			return err
		}

		viewer, err := userStore.GetByID(ctx, viewerID)
		if err != nil {
			return err
		}

		result = SurfResult{
			Reward:         surf.Reward,
			SurfingBalance: viewer.SurfingBalance,
		}
		return nil
	})
	if err != nil {
		log.Debug("surf failed",
			slog.String("ad_id", adID.String()),
			slog.String("viewer_id", viewerID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("ad surfed",
		slog.String("ad_id", adID.String()),
		slog.String("viewer_id", viewerID.String()),
		slog.Int64("reward", result.Reward))
	return &result, nil
}

// Deposit implements AdService.Deposit.
func (s *adServiceImpl) Deposit(
	ctx context.Context,
	adID, ownerID uuid.UUID,
	amount int64,
) (*domain.Ad, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "must be positive", domain.ErrValidation)
	}

	ad, err := s.adStore.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}

	if ad.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: only the owner can deposit into an ad", domain.ErrUnauthorized)
	}

	var updated *domain.Ad
	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		adStore := s.adStore.WithTx(tx)
		userStore := s.userStore.WithTx(tx)

		if err := userStore.DebitAdvertisingBalance(ctx, ownerID, amount); err != nil {
			return err
		}
		if err := adStore.CreditBalance(ctx, ad.ID, amount); err != nil {
			return err
		}

		var getErr error
		updated, getErr = adStore.GetByID(ctx, ad.ID)
		return getErr
	})
	if err != nil {
		log.Debug("deposit failed",
			slog.String("ad_id", adID.String()),
			slog.String("owner_id", ownerID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("satoshi deposited",
		slog.String("ad_id", adID.String()),
		slog.Int64("amount", amount))
	return updated, nil
}

// Update implements AdService.Update.
func (s *adServiceImpl) Update(
	ctx context.Context,
	adID, ownerID uuid.UUID,
	patch AdPatch,
) (*domain.Ad, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ad, err := s.adStore.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}

	if ad.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: only the owner can update an ad", domain.ErrUnauthorized)
	}

	ad.Title = patch.Title
	ad.Description = patch.Description
	ad.TargetURL = patch.TargetURL
	ad.Reward = patch.Reward
	if patch.Published != nil {
		ad.Published = *patch.Published
	}
	ad.UpdatedAt = time.Now().UTC()

	if err := ad.Validate(); err != nil {
		return nil, err
	}

	if err := s.adStore.Update(ctx, ad); err != nil {
		return nil, err
	}

	log.Info("ad updated", slog.String("ad_id", adID.String()))
	return ad, nil
}

// Delete implements AdService.Delete.
func (s *adServiceImpl) Delete(ctx context.Context, adID, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ad, err := s.adStore.GetByID(ctx, adID)
	if err != nil {
		return err
	}

	if ad.OwnerID != ownerID {
		return fmt.Errorf("%w: only the owner can delete an ad", domain.ErrUnauthorized)
	}

	if err := s.adStore.Delete(ctx, ad.ID); err != nil {
		return err
	}

	log.Info("ad deleted", slog.String("ad_id", adID.String()))
	return nil
}
