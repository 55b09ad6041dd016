package lists

import (
	"fmt"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

var marketing = i18n.T("Marketing", "التسويق")

func init() {
	registerDiscounts()
	registerFlashSales()
	registerTags()
}

func registerDiscounts() {
	core.Register(core.MustBind(core.Definition[Discount, int64]{
		Info: core.ListInfo{
			Key:    "discounts",
			Portal: core.PortalAdmin,
			Group:  marketing,
			Label:  i18n.T("Discounts", "الخصومات"),
		},
		Columns: []datatable.Column[Discount]{
			{Key: "code", Header: i18n.T("Code", "الرمز"), Sortable: true, Natural: true, MinWidth: "8rem"},
			{Key: "title", Header: i18n.T("Title", "العنوان"), Sortable: true},
			{
				Key: "type", Header: i18n.T("Type", "النوع"), Sortable: true, Type: datatable.FieldEnum,
				Render: func(d Discount, l i18n.Locale) string { return discountTypes.label(d.Type, l) },
			},
			{
				Key: "value", Header: i18n.T("Value", "القيمة"), Sortable: true, Type: datatable.FieldNumeric,
				Render: func(d Discount, l i18n.Locale) string {
					if d.Type == "percentage" {
						return percent(d.Value)
					}
					return money(d.Value, l)
				},
			},
			{
				Key: "min_order", Header: i18n.T("Minimum order", "الحد الأدنى للطلب"), Sortable: true, Type: datatable.FieldNumeric,
				Render: func(d Discount, l i18n.Locale) string { return money(d.MinOrder, l) },
			},
			{
				Key: "used", Header: i18n.T("Used", "مرات الاستخدام"), Sortable: true, Type: datatable.FieldNumeric,
				Render: func(d Discount, l i18n.Locale) string {
					return fmt.Sprintf("%d / %s", d.Used, optionalInt(d.UsageLimit, l))
				},
			},
			{Key: "starts", Header: i18n.T("Starts", "يبدأ"), Sortable: true, Type: datatable.FieldDate},
			{
				Key: "ends", Header: i18n.T("Ends", "ينتهي"), Sortable: true, Type: datatable.FieldDate,
				Render: func(d Discount, _ i18n.Locale) string { return optionalDate(d.Ends) },
			},
			{Key: "active", Header: i18n.T("Active", "مفعل"), Sortable: true, Type: datatable.FieldBool},
		},
		Config: withSort(datatable.SortState{Key: "starts", Dir: datatable.Descending}),
		Actions: []core.ActionFactory[Discount]{
			core.UpdateAction[Discount, int64](core.Update[Discount]{
				Name:  "toggle_active",
				Label: i18n.T("Activate / pause", "تفعيل / إيقاف"),
				Icon:  "power",
				Apply: func(d *Discount) error {
					d.Active = !d.Active
					return nil
				},
			}),
			core.DeleteAction[Discount, int64](),
		},
	}))
}

func registerFlashSales() {
	core.Register(core.MustBind(core.Definition[FlashSale, int64]{
		Info: core.ListInfo{
			Key:    "flash_sales",
			Portal: core.PortalAdmin,
			Group:  marketing,
			Label:  i18n.T("Flash Sales", "العروض الخاطفة"),
		},
		Columns: []datatable.Column[FlashSale]{
			{Key: "title", Header: i18n.T("Title", "العنوان"), Sortable: true},
			{Key: "product", Header: i18n.T("Product", "المنتج"), Sortable: true},
			{
				Key: "discount", Header: i18n.T("Discount", "الخصم"), Sortable: true, Type: datatable.FieldNumeric,
				Render: func(f FlashSale, _ i18n.Locale) string { return percent(f.Discount) },
			},
			{Key: "starts", Header: i18n.T("Starts", "يبدأ"), Sortable: true, Type: datatable.FieldDate},
			{Key: "ends", Header: i18n.T("Ends", "ينتهي"), Sortable: true, Type: datatable.FieldDate},
			{
				Key: "sold", Header: i18n.T("Sold", "المباع"), Sortable: true, Type: datatable.FieldNumeric,
				Render: func(f FlashSale, _ i18n.Locale) string { return fmt.Sprintf("%d / %d", f.Sold, f.Stock) },
			},
			{
				Key: "status", Header: i18n.T("Status", "الحالة"), Sortable: true, Type: datatable.FieldEnum,
				Render: func(f FlashSale, l i18n.Locale) string { return saleStatuses.label(f.Status, l) },
			},
		},
		Config: withSort(datatable.SortState{Key: "starts", Dir: datatable.Ascending}),
		Actions: []core.ActionFactory[FlashSale]{
			core.UpdateAction[FlashSale, int64](core.Update[FlashSale]{
				Name:    "end",
				Label:   i18n.T("End now", "إنهاء الآن"),
				Icon:    "stop",
				Color:   "warning",
				Confirm: i18n.T("End this sale now?", "هل تريد إنهاء هذا العرض الآن؟"),
				Apply:   transition(saleStatus, "ended", "scheduled", "live"),
			}),
			core.DeleteAction[FlashSale, int64](),
		},
	}))
}

func saleStatus(f *FlashSale) *string { return &f.Status }

func registerTags() {
	core.Register(core.MustBind(core.Definition[Tag, int64]{
		Info: core.ListInfo{
			Key:    "tags",
			Portal: core.PortalAdmin,
			Group:  marketing,
			Label:  i18n.T("Tags", "الوسوم"),
		},
		Columns: []datatable.Column[Tag]{
			{Key: "name", Header: i18n.T("Name", "الاسم"), Sortable: true},
			{Key: "slug", Header: i18n.T("Slug", "المعرف"), Sortable: true},
			{Key: "products", Header: i18n.T("Products", "المنتجات"), Sortable: true, Type: datatable.FieldNumeric},
			{Key: "created", Header: i18n.T("Created", "تاريخ الإنشاء"), Sortable: true, Type: datatable.FieldDate},
		},
		Config: withSort(datatable.SortState{Key: "name", Dir: datatable.Ascending}),
		Actions: []core.ActionFactory[Tag]{
			core.DeleteAction[Tag, int64](),
		},
	}))
}
