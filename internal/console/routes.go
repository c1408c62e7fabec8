// Package console holds the headless controllers behind the admin
// surfaces: the voucher form and the voucher list. They own all local UI
// state (filters, pagination, pending confirmations, submission
// lifecycle) and talk to the backend exclusively through VoucherService,
// so every surface that drives them gets the same behavior.
package console

import "fmt"

// Navigation targets returned by the controllers
const (
	RouteVoucherList = "/vouchers"
	RouteVoucherNew  = "/vouchers/new"
)

// RouteVoucherEdit is the edit route for one voucher
func RouteVoucherEdit(id int64) string {
	return fmt.Sprintf("/vouchers/%d/edit", id)
}
