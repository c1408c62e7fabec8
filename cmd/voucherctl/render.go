package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/promokit/voucheradmin/internal/api/dto"
)

func renderPage(w io.Writer, page *dto.ListVouchersResponse) {
	if page == nil {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCODE\tTITLE\tPLATFORM\tDISCOUNT\tSTATUS\tUSAGE\tWINDOW")
	for i := range page.Content {
		v := &page.Content[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s %s\t%s\t%s\t%s .. %s\n",
			v.ID,
			v.Code,
			v.Title,
			v.Platform,
			v.DiscountValue.String(),
			v.DiscountType,
			v.Status,
			usageColumn(v),
			v.StartAt.Format(time.DateOnly),
			v.EndAt.Format(time.DateOnly),
		)
	}
	tw.Flush()

	fmt.Fprintf(w, "\npage %d/%d, %d vouchers total\n",
		page.PageNumber+1, max(page.TotalPages, 1), page.TotalElements)
}

func renderVoucher(w io.Writer, v *dto.VoucherResponse) {
	if v == nil {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", v.ID)
	fmt.Fprintf(tw, "Code:\t%s\n", v.Code)
	fmt.Fprintf(tw, "Title:\t%s\n", v.Title)
	if v.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", v.Description)
	}
	fmt.Fprintf(tw, "Platform:\t%s\n", v.Platform)
	fmt.Fprintf(tw, "Discount:\t%s %s\n", v.DiscountValue.String(), v.DiscountType)
	fmt.Fprintf(tw, "Min order:\t%s\n", v.MinOrderAmount.String())
	fmt.Fprintf(tw, "Window:\t%s .. %s\n", v.StartAt.Format(time.RFC3339), v.EndAt.Format(time.RFC3339))
	fmt.Fprintf(tw, "Usage:\t%s\n", usageColumn(v))
	fmt.Fprintf(tw, "Status:\t%s\n", v.Status)
	if len(v.Tags) > 0 {
		fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(v.Tags, ", "))
	}
	fmt.Fprintf(tw, "Active now:\t%t\n", v.IsActive)
	fmt.Fprintf(tw, "Expired:\t%t\n", v.IsExpired)
	tw.Flush()
}

func usageColumn(v *dto.VoucherResponse) string {
	if v.UsageLimit == nil {
		return fmt.Sprintf("%d/unlimited", v.UsedCount)
	}
	return fmt.Sprintf("%d/%d", v.UsedCount, *v.UsageLimit)
}
