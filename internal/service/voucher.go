package service

import (
	"context"

	"github.com/promokit/voucheradmin/internal/api/dto"
	"github.com/promokit/voucheradmin/internal/domain/voucher"
	"github.com/promokit/voucheradmin/internal/logger"
	"github.com/promokit/voucheradmin/internal/types"
)

// VoucherService sits between the surfaces (gateway, CLI, console
// controllers) and the repository. It is the only place request
// validation runs; everything past it trusts its input.
type VoucherService interface {
	ListVouchers(ctx context.Context, filter *types.VoucherFilter) (*dto.ListVouchersResponse, error)
	GetVoucher(ctx context.Context, id int64) (*dto.VoucherResponse, error)
	GetVoucherByCode(ctx context.Context, code string) (*dto.VoucherResponse, error)
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest) (*dto.VoucherResponse, error)
	UpdateVoucher(ctx context.Context, id int64, req dto.UpdateVoucherRequest) (*dto.VoucherResponse, error)
	DeleteVoucher(ctx context.Context, id int64) error
	RestoreVoucher(ctx context.Context, id int64) error
	UseVoucher(ctx context.Context, id int64) (*dto.VoucherResponse, error)
}

type voucherService struct {
	repo   voucher.Repository
	logger *logger.Logger
}

func NewVoucherService(repo voucher.Repository, logger *logger.Logger) VoucherService {
	return &voucherService{
		repo:   repo,
		logger: logger,
	}
}

func (s *voucherService) ListVouchers(ctx context.Context, filter *types.VoucherFilter) (*dto.ListVouchersResponse, error) {
	if filter == nil {
		filter = types.NewDefaultVoucherFilter()
	}
	filter.WithDefaults()

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	page, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewListVouchersResponse(page), nil
}

func (s *voucherService) GetVoucher(ctx context.Context, id int64) (*dto.VoucherResponse, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewVoucherResponse(v), nil
}

func (s *voucherService) GetVoucherByCode(ctx context.Context, code string) (*dto.VoucherResponse, error) {
	v, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return dto.NewVoucherResponse(v), nil
}

func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest) (*dto.VoucherResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.ToVoucher())
	if err != nil {
		return nil, err
	}

	s.logger.Infow("voucher created", "id", created.ID, "code", created.Code)
	return dto.NewVoucherResponse(created), nil
}

func (s *voucherService) UpdateVoucher(ctx context.Context, id int64, req dto.UpdateVoucherRequest) (*dto.VoucherResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req.ToUpdateInput())
	if err != nil {
		return nil, err
	}

	s.logger.Infow("voucher updated", "id", id)
	return dto.NewVoucherResponse(updated), nil
}

func (s *voucherService) DeleteVoucher(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("voucher deleted", "id", id)
	return nil
}

func (s *voucherService) RestoreVoucher(ctx context.Context, id int64) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("voucher restored", "id", id)
	return nil
}

func (s *voucherService) UseVoucher(ctx context.Context, id int64) (*dto.VoucherResponse, error) {
	used, err := s.repo.Use(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("voucher used", "id", id, "used_count", used.UsedCount)
	return dto.NewVoucherResponse(used), nil
}
