package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/promokit/voucheradmin/internal/console"
	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/types"
)

var listFlags struct {
	status    string
	platform  string
	q         string
	activeNow bool
	page      int
	size      int
	sort      string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List vouchers with filters and pagination",
	RunE:  cmdList,
}

var getCmd = &cobra.Command{
	Use:   "get <id|code>",
	Short: "Show one voucher by id, or by code with --by-code",
	Args:  cobra.ExactArgs(1),
	RunE:  cmdGet,
}

var getByCode bool

var formFlags struct {
	code           string
	title          string
	description    string
	platform       string
	discountType   string
	discountValue  string
	minOrderAmount string
	startAt        string
	endAt          string
	usageLimit     int
	tags           []string
	status         string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a voucher",
	RunE:  cmdCreate,
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a voucher (code is immutable and cannot be changed)",
	Args:  cobra.ExactArgs(1),
	RunE:  cmdUpdate,
}

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Soft-delete a voucher (recoverable via restore)",
	Args:  cobra.ExactArgs(1),
	RunE:  cmdDelete,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a soft-deleted voucher",
	Args:  cobra.ExactArgs(1),
	RunE:  cmdRestore,
}

var useCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Redeem a voucher once, incrementing its usage counter",
	Args:  cobra.ExactArgs(1),
	RunE:  cmdUse,
}

func init() {
	listCmd.Flags().StringVar(&listFlags.status, "status", "", "filter by status (DRAFT|ACTIVE|INACTIVE|EXPIRED)")
	listCmd.Flags().StringVar(&listFlags.platform, "platform", "", "filter by platform (SHOPEE|LAZADA|TIKTOK|TIKI|OTHER)")
	listCmd.Flags().StringVar(&listFlags.q, "q", "", "free-text search")
	listCmd.Flags().BoolVar(&listFlags.activeNow, "active-now", false, "only vouchers active right now")
	listCmd.Flags().IntVar(&listFlags.page, "page", 0, "page number (0-based)")
	listCmd.Flags().IntVar(&listFlags.size, "size", types.FilterDefaultSize, "page size")
	listCmd.Flags().StringVar(&listFlags.sort, "sort", types.FilterDefaultSort, "sort as field,direction")

	getCmd.Flags().BoolVar(&getByCode, "by-code", false, "look the voucher up by code instead of id")

	for _, cmd := range []*cobra.Command{createCmd, updateCmd} {
		cmd.Flags().StringVar(&formFlags.title, "title", "", "voucher title")
		cmd.Flags().StringVar(&formFlags.description, "description", "", "voucher description")
		cmd.Flags().StringVar(&formFlags.platform, "platform", "", "platform (SHOPEE|LAZADA|TIKTOK|TIKI|OTHER)")
		cmd.Flags().StringVar(&formFlags.discountType, "discount-type", "", "discount type (PERCENT|FIXED)")
		cmd.Flags().StringVar(&formFlags.discountValue, "discount-value", "0", "discount value")
		cmd.Flags().StringVar(&formFlags.minOrderAmount, "min-order-amount", "0", "minimum order amount")
		cmd.Flags().StringVar(&formFlags.startAt, "start-at", "", "validity start (RFC3339)")
		cmd.Flags().StringVar(&formFlags.endAt, "end-at", "", "validity end (RFC3339)")
		cmd.Flags().IntVar(&formFlags.usageLimit, "usage-limit", 0, "usage cap, 0 for unlimited")
		cmd.Flags().StringSliceVar(&formFlags.tags, "tags", nil, "tags")
		cmd.Flags().StringVar(&formFlags.status, "status", "", "requested status (DRAFT|ACTIVE|INACTIVE|EXPIRED)")
	}
	createCmd.Flags().StringVar(&formFlags.code, "code", "", "unique voucher code (immutable after creation)")

	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "skip the confirmation prompt")
}

func cmdList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	list := console.NewVoucherList(a.service)
	if listFlags.status != "" {
		list.SetStatus(lo.ToPtr(types.VoucherStatus(listFlags.status)))
	}
	if listFlags.platform != "" {
		list.SetPlatform(lo.ToPtr(types.Platform(listFlags.platform)))
	}
	if listFlags.activeNow {
		list.SetActiveNow(lo.ToPtr(true))
	}
	if listFlags.q != "" {
		list.SetSearchInput(listFlags.q)
		list.SubmitSearch()
	}
	list.SetSort(listFlags.sort)
	list.SetSize(listFlags.size)
	list.SetPage(listFlags.page)

	if err := list.Load(cmd.Context()); err != nil {
		return err
	}

	renderPage(os.Stdout, list.Page())
	return nil
}

func cmdGet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if getByCode {
		resp, err := a.service.GetVoucherByCode(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderVoucher(os.Stdout, resp)
		return nil
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	resp, err := a.service.GetVoucher(cmd.Context(), id)
	if err != nil {
		return err
	}
	renderVoucher(os.Stdout, resp)
	return nil
}

func cmdCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	form := console.NewVoucherForm(a.service)
	if err := fillForm(form); err != nil {
		return err
	}
	form.Fields.Code = formFlags.code

	route, err := form.Submit(cmd.Context())
	if err != nil {
		reportFormErrors(form)
		return err
	}

	fmt.Fprintf(os.Stdout, "voucher created, back to %s\n", route)
	return nil
}

func cmdUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	form := console.NewVoucherForm(a.service)
	if err := form.Load(cmd.Context(), id); err != nil {
		return err
	}
	if err := fillForm(form); err != nil {
		return err
	}

	route, err := form.Submit(cmd.Context())
	if err != nil {
		reportFormErrors(form)
		return err
	}

	fmt.Fprintf(os.Stdout, "voucher %d updated, back to %s\n", id, route)
	return nil
}

func cmdDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	target, err := a.service.GetVoucher(cmd.Context(), id)
	if err != nil {
		return err
	}

	list := console.NewVoucherList(a.service)
	list.RequestDelete(target)

	if !deleteYes {
		fmt.Fprintf(os.Stdout, "Delete voucher %q? [y/N]: ", target.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			list.CancelDelete()
			fmt.Fprintln(os.Stdout, "aborted")
			return nil
		}
	}

	if err := list.ConfirmDelete(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "voucher %d deleted (restore with: voucherctl restore %d)\n", id, id)
	return nil
}

func cmdRestore(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := a.service.RestoreVoucher(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "voucher %d restored\n", id)
	return nil
}

func cmdUse(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	resp, err := a.service.UseVoucher(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "voucher %d used, count now %d\n", id, resp.UsedCount)
	return nil
}

// fillForm copies the set flags onto the form fields, leaving loaded
// values in place for flags the caller did not pass.
func fillForm(form *console.VoucherForm) error {
	if formFlags.title != "" {
		form.Fields.Title = formFlags.title
	}
	if formFlags.description != "" {
		form.Fields.Description = formFlags.description
	}
	if formFlags.platform != "" {
		form.Fields.Platform = types.Platform(formFlags.platform)
	}
	if formFlags.discountType != "" {
		form.Fields.DiscountType = types.DiscountType(formFlags.discountType)
	}
	if formFlags.discountValue != "" {
		value, err := decimal.NewFromString(formFlags.discountValue)
		if err != nil {
			return ierr.NewError("invalid discount value").
				WithHintf("%q is not a number", formFlags.discountValue).
				Mark(ierr.ErrValidation)
		}
		form.Fields.DiscountValue = value
	}
	if formFlags.minOrderAmount != "" {
		value, err := decimal.NewFromString(formFlags.minOrderAmount)
		if err != nil {
			return ierr.NewError("invalid minimum order amount").
				WithHintf("%q is not a number", formFlags.minOrderAmount).
				Mark(ierr.ErrValidation)
		}
		form.Fields.MinOrderAmount = value
	}
	if formFlags.startAt != "" {
		t, err := parseTime(formFlags.startAt)
		if err != nil {
			return err
		}
		form.Fields.StartAt = t
	}
	if formFlags.endAt != "" {
		t, err := parseTime(formFlags.endAt)
		if err != nil {
			return err
		}
		form.Fields.EndAt = t
	}
	if formFlags.usageLimit > 0 {
		form.Fields.UsageLimit = lo.ToPtr(formFlags.usageLimit)
	}
	if len(formFlags.tags) > 0 {
		form.Fields.Tags = formFlags.tags
	}
	if formFlags.status != "" {
		form.Fields.Status = types.VoucherStatus(formFlags.status)
	}
	return nil
}

func reportFormErrors(form *console.VoucherForm) {
	for field, message := range form.FieldErrors() {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, message)
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ierr.NewError("invalid voucher id").
			WithHintf("%q is not a number", raw).
			Mark(ierr.ErrValidation)
	}
	return id, nil
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ierr.NewError("invalid timestamp").
		WithHintf("%q must be RFC3339, 2006-01-02T15:04 or 2006-01-02", raw).
		Mark(ierr.ErrValidation)
}
