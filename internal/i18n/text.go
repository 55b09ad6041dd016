package i18n

// Text holds parallel English and Arabic renditions of the same string.
type Text struct {
	EN string `json:"en" yaml:"en"`
	AR string `json:"ar" yaml:"ar"`
}

// T builds a Text from its two renditions.
func T(en, ar string) Text {
	return Text{EN: en, AR: ar}
}

// In returns the rendition for l, falling back to English when the Arabic
// rendition is empty.
func (t Text) In(l Locale) string {
	if l == Arabic && t.AR != "" {
		return t.AR
	}
	return t.EN
}

// IsZero reports whether both renditions are empty.
func (t Text) IsZero() bool {
	return t.EN == "" && t.AR == ""
}

// dictionary holds the UI chrome strings rendered around tables.
var dictionary = map[string]Text{
	"app.title":          T("Storefront", "المتجر"),
	"portal.admin":       T("Admin", "المسؤول"),
	"portal.seller":      T("Seller", "البائع"),
	"portal.customer":    T("Customer", "العميل"),
	"table.empty":        T("No records found", "لا توجد سجلات"),
	"table.actions":      T("Actions", "الإجراءات"),
	"table.select_page":  T("Select page", "تحديد الصفحة"),
	"table.select_all":   T("Select all results", "تحديد كل النتائج"),
	"table.clear":        T("Clear selection", "إلغاء التحديد"),
	"table.selected":     T("selected", "محدد"),
	"table.export":       T("Export CSV", "تصدير CSV"),
	"page.previous":      T("Previous", "السابق"),
	"page.next":          T("Next", "التالي"),
	"page.of":            T("of", "من"),
	"page.page":          T("Page", "صفحة"),
	"page.per_page":      T("Rows per page", "عدد الصفوف لكل صفحة"),
	"filter.title":       T("Filters", "عوامل التصفية"),
	"filter.search":      T("Search", "بحث"),
	"filter.apply":       T("Apply", "تطبيق"),
	"filter.reset":       T("Reset", "إعادة تعيين"),
	"filter.op.contains": T("contains", "يحتوي"),
	"filter.op.eq":       T("equals", "يساوي"),
	"filter.op.starts":   T("starts with", "يبدأ بـ"),
	"filter.op.ends":     T("ends with", "ينتهي بـ"),
	"filter.op.gte":      T("at least", "على الأقل"),
	"filter.op.lte":      T("at most", "على الأكثر"),
	"filter.op.gt":       T("greater than", "أكبر من"),
	"filter.op.lt":       T("less than", "أقل من"),
	"filter.op.in":       T("one of", "أحد"),
	"value.yes":          T("Yes", "نعم"),
	"value.no":           T("No", "لا"),
	"language.switch":    T("العربية", "English"),
	"dashboard.lists":    T("Lists", "القوائم"),
	"dashboard.subtitle": T("Choose a list to manage", "اختر قائمة لإدارتها"),
}

// Lookup returns the dictionary entry for key in l. Unknown keys are
// returned unchanged so missing entries are visible rather than blank.
func Lookup(l Locale, key string) string {
	t, ok := dictionary[key]
	if !ok {
		return key
	}
	return t.In(l)
}

// SortKey orders texts by their English rendition.
func (t Text) SortKey() any {
	return t.EN
}
