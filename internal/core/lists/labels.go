package lists

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

// enum maps stored enum values to their bilingual labels.
type enum map[string]i18n.Text

// label returns the localized label of v, or v itself when unknown.
func (e enum) label(v string, l i18n.Locale) string {
	if t, ok := e[v]; ok {
		return t.In(l)
	}
	return v
}

var (
	orderStatuses = enum{
		"pending":    i18n.T("Pending", "قيد الانتظار"),
		"processing": i18n.T("Processing", "قيد المعالجة"),
		"shipped":    i18n.T("Shipped", "تم الشحن"),
		"delivered":  i18n.T("Delivered", "تم التوصيل"),
		"cancelled":  i18n.T("Cancelled", "ملغي"),
	}

	returnStatuses = enum{
		"requested": i18n.T("Requested", "مطلوب"),
		"approved":  i18n.T("Approved", "موافق عليه"),
		"rejected":  i18n.T("Rejected", "مرفوض"),
		"refunded":  i18n.T("Refunded", "تم الاسترداد"),
	}

	returnReasons = enum{
		"damaged":      i18n.T("Damaged item", "منتج تالف"),
		"wrong_item":   i18n.T("Wrong item", "منتج خاطئ"),
		"not_as_shown": i18n.T("Not as described", "غير مطابق للوصف"),
		"changed_mind": i18n.T("Changed mind", "تغيير الرأي"),
	}

	shipmentStatuses = enum{
		"label_created":    i18n.T("Label created", "تم إنشاء البوليصة"),
		"in_transit":       i18n.T("In transit", "قيد النقل"),
		"out_for_delivery": i18n.T("Out for delivery", "خرج للتوصيل"),
		"delivered":        i18n.T("Delivered", "تم التوصيل"),
		"returned":         i18n.T("Returned", "مرتجع"),
	}

	saleStatuses = enum{
		"scheduled": i18n.T("Scheduled", "مجدول"),
		"live":      i18n.T("Live", "جارٍ"),
		"ended":     i18n.T("Ended", "منتهي"),
	}

	discountTypes = enum{
		"percentage": i18n.T("Percentage", "نسبة مئوية"),
		"fixed":      i18n.T("Fixed amount", "مبلغ ثابت"),
	}

	intervals = enum{
		"monthly": i18n.T("Monthly", "شهري"),
		"yearly":  i18n.T("Yearly", "سنوي"),
	}

	paymentMethods = enum{
		"card":   i18n.T("Card", "بطاقة"),
		"cod":    i18n.T("Cash on delivery", "الدفع عند الاستلام"),
		"wallet": i18n.T("Wallet", "محفظة"),
	}

	faqCategories = enum{
		"orders":   i18n.T("Orders", "الطلبات"),
		"payments": i18n.T("Payments", "المدفوعات"),
		"shipping": i18n.T("Shipping", "الشحن"),
		"returns":  i18n.T("Returns", "المرتجعات"),
		"account":  i18n.T("Account", "الحساب"),
	}

	stockLevels = enum{
		"ok":  i18n.T("In stock", "متوفر"),
		"low": i18n.T("Low stock", "مخزون منخفض"),
		"out": i18n.T("Out of stock", "نفد المخزون"),
	}

	currency = i18n.T("SAR", "ر.س")
)

// money renders an amount with two decimals and the currency.
func money(d decimal.Decimal, l i18n.Locale) string {
	return d.StringFixed(2) + " " + currency.In(l)
}

// percent renders a percentage without trailing zeros.
func percent(d decimal.Decimal) string {
	return d.String() + "%"
}

// optionalInt renders nil as the localized "unlimited".
func optionalInt(n *int, l i18n.Locale) string {
	if n == nil {
		return i18n.T("Unlimited", "غير محدود").In(l)
	}
	return strconv.Itoa(*n)
}

// optionalDate renders nil as a dash.
func optionalDate(d *core.Date) string {
	if d == nil || d.IsZero() {
		return "-"
	}
	return d.String()
}

// joined renders a list of names separated by commas.
func joined(items []string, l i18n.Locale) string {
	sep := ", "
	if l == i18n.Arabic {
		sep = "، "
	}
	return strings.Join(items, sep)
}
