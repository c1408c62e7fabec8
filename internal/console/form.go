package console

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/promokit/voucheradmin/internal/api/dto"
	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/service"
	"github.com/promokit/voucheradmin/internal/types"
)

// FormMode distinguishes creating a new voucher from editing one
type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

// FormState is the submission lifecycle: editing until a valid submit is
// dispatched, submitting while the request is in flight, settled after
// success. A failed submit re-enters editing with the error retained.
type FormState string

const (
	FormStateEditing    FormState = "editing"
	FormStateSubmitting FormState = "submitting"
	FormStateSettled    FormState = "settled"
)

// FormFields is the editable field set. In edit mode Code stays visible
// and populated but never reaches the update payload.
type FormFields struct {
	Code           string
	Title          string
	Description    string
	Platform       types.Platform
	DiscountType   types.DiscountType
	DiscountValue  decimal.Decimal
	MinOrderAmount decimal.Decimal
	StartAt        time.Time
	EndAt          time.Time
	UsageLimit     *int
	Tags           []string
	Status         types.VoucherStatus
}

// VoucherForm drives the create/edit form
type VoucherForm struct {
	service service.VoucherService

	mode      FormMode
	state     FormState
	voucherID int64

	Fields      FormFields
	fieldErrors map[string]string
	submitErr   error
}

// NewVoucherForm starts a blank create form
func NewVoucherForm(svc service.VoucherService) *VoucherForm {
	return &VoucherForm{
		service: svc,
		mode:    FormModeCreate,
		state:   FormStateEditing,
	}
}

// Load switches the form to edit mode, pre-populating every field from
// the fetched voucher. Timestamps are truncated to minute precision for
// editing, matching the granularity the form exposes.
func (f *VoucherForm) Load(ctx context.Context, id int64) error {
	resp, err := f.service.GetVoucher(ctx, id)
	if err != nil {
		return err
	}

	f.mode = FormModeEdit
	f.state = FormStateEditing
	f.voucherID = id
	f.Fields = FormFields{
		Code:           resp.Code,
		Title:          resp.Title,
		Description:    resp.Description,
		Platform:       resp.Platform,
		DiscountType:   resp.DiscountType,
		DiscountValue:  resp.DiscountValue,
		MinOrderAmount: resp.MinOrderAmount,
		StartAt:        resp.StartAt.Truncate(time.Minute),
		EndAt:          resp.EndAt.Truncate(time.Minute),
		UsageLimit:     resp.UsageLimit,
		Tags:           resp.Tags,
		Status:         resp.Status,
	}
	f.fieldErrors = nil
	f.submitErr = nil
	return nil
}

func (f *VoucherForm) Mode() FormMode {
	return f.mode
}

func (f *VoucherForm) State() FormState {
	return f.state
}

// FieldErrors returns the per-field annotations from the last validation
func (f *VoucherForm) FieldErrors() map[string]string {
	return f.fieldErrors
}

// SubmitError returns the raw error from the last failed submission
func (f *VoucherForm) SubmitError() error {
	return f.submitErr
}

// Submit validates and dispatches. Invalid input blocks the submission
// with field annotations and issues no network call. On success the form
// settles and the list route is returned for navigation; on failure the
// form re-enters editing with the error attached.
func (f *VoucherForm) Submit(ctx context.Context) (string, error) {
	if errs := f.validate(); len(errs) > 0 {
		f.fieldErrors = errs
		return "", ierr.NewError("form validation failed").
			WithHint("Please correct the highlighted fields").
			Mark(ierr.ErrValidation)
	}
	f.fieldErrors = nil

	f.state = FormStateSubmitting

	var err error
	switch f.mode {
	case FormModeEdit:
		_, err = f.service.UpdateVoucher(ctx, f.voucherID, f.updateRequest())
	default:
		_, err = f.service.CreateVoucher(ctx, f.createRequest())
	}

	if err != nil {
		f.state = FormStateEditing
		f.submitErr = err
		return "", err
	}

	f.state = FormStateSettled
	f.submitErr = nil
	return RouteVoucherList, nil
}

// validate mirrors the form-level rules. Note the deliberately missing
// upper bound on percentage discounts; the backend owns that rule.
func (f *VoucherForm) validate() map[string]string {
	errs := make(map[string]string)

	if f.mode == FormModeCreate {
		if f.Fields.Code == "" {
			errs["code"] = "Code is required"
		} else if len(f.Fields.Code) > 64 {
			errs["code"] = "Code must be at most 64 characters"
		}
	}

	if f.Fields.Title == "" {
		errs["title"] = "Title is required"
	} else if len(f.Fields.Title) > 200 {
		errs["title"] = "Title must be at most 200 characters"
	}

	if f.Fields.DiscountValue.IsNegative() {
		errs["discount_value"] = "Discount value must be at least 0"
	}

	if f.Fields.MinOrderAmount.IsNegative() {
		errs["min_order_amount"] = "Minimum order amount must be at least 0"
	}

	if f.Fields.StartAt.IsZero() {
		errs["start_at"] = "Start time is required"
	}
	if f.Fields.EndAt.IsZero() {
		errs["end_at"] = "End time is required"
	}

	if err := f.Fields.Platform.Validate(); err != nil {
		errs["platform"] = "Platform is required"
	}
	if err := f.Fields.DiscountType.Validate(); err != nil {
		errs["discount_type"] = "Discount type is required"
	}

	if f.Fields.UsageLimit != nil && *f.Fields.UsageLimit <= 0 {
		errs["usage_limit"] = "Usage limit must be a positive number"
	}

	return errs
}

func (f *VoucherForm) createRequest() dto.CreateVoucherRequest {
	return dto.CreateVoucherRequest{
		Code:           f.Fields.Code,
		Title:          f.Fields.Title,
		Description:    f.Fields.Description,
		Platform:       f.Fields.Platform,
		DiscountType:   f.Fields.DiscountType,
		DiscountValue:  f.Fields.DiscountValue,
		MinOrderAmount: f.Fields.MinOrderAmount,
		StartAt:        f.Fields.StartAt,
		EndAt:          f.Fields.EndAt,
		UsageLimit:     f.Fields.UsageLimit,
		Tags:           f.Fields.Tags,
		Status:         f.Fields.Status,
	}
}

// updateRequest builds the partial payload. Code never appears here even
// though the field stays populated on screen.
func (f *VoucherForm) updateRequest() dto.UpdateVoucherRequest {
	req := dto.UpdateVoucherRequest{
		Title:          lo.ToPtr(f.Fields.Title),
		Description:    lo.ToPtr(f.Fields.Description),
		Platform:       lo.ToPtr(f.Fields.Platform),
		DiscountType:   lo.ToPtr(f.Fields.DiscountType),
		DiscountValue:  lo.ToPtr(f.Fields.DiscountValue),
		MinOrderAmount: lo.ToPtr(f.Fields.MinOrderAmount),
		StartAt:        lo.ToPtr(f.Fields.StartAt),
		EndAt:          lo.ToPtr(f.Fields.EndAt),
		UsageLimit:     f.Fields.UsageLimit,
		Tags:           lo.ToPtr(f.Fields.Tags),
	}
	if f.Fields.Status != "" {
		req.Status = lo.ToPtr(f.Fields.Status)
	}
	return req
}
