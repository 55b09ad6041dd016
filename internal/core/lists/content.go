package lists

import (
	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

func init() {
	registerFAQs()
	registerPlans()
}

func registerFAQs() {
	core.Register(core.MustBind(core.Definition[FAQ, int64]{
		Info: core.ListInfo{
			Key:    "faqs",
			Portal: core.PortalAdmin,
			Group:  i18n.T("Content", "المحتوى"),
			Label:  i18n.T("FAQs", "الأسئلة الشائعة"),
		},
		Columns: []datatable.Column[FAQ]{
			{Key: "position", Header: i18n.T("#", "#"), Sortable: true, Type: datatable.FieldNumeric, MinWidth: "3rem"},
			{Key: "question", Header: i18n.T("Question", "السؤال"), Sortable: true, MinWidth: "16rem"},
			{
				Key: "category", Header: i18n.T("Category", "الفئة"), Sortable: true, Type: datatable.FieldEnum,
				Render: func(f FAQ, l i18n.Locale) string { return faqCategories.label(f.Category, l) },
			},
			{Key: "published", Header: i18n.T("Published", "منشور"), Sortable: true, Type: datatable.FieldBool},
			{Key: "updated", Header: i18n.T("Updated", "آخر تحديث"), Sortable: true, Type: datatable.FieldDate},
		},
		Config: withSort(datatable.SortState{Key: "position", Dir: datatable.Ascending}),
		Actions: []core.ActionFactory[FAQ]{
			core.UpdateAction[FAQ, int64](core.Update[FAQ]{
				Name:  "toggle_published",
				Label: i18n.T("Publish / unpublish", "نشر / إلغاء النشر"),
				Icon:  "globe",
				Apply: func(f *FAQ) error {
					f.Published = !f.Published
					return nil
				},
			}),
			core.DeleteAction[FAQ, int64](),
		},
	}))
}

func registerPlans() {
	core.Register(core.MustBind(core.Definition[Plan, int64]{
		Info: core.ListInfo{
			Key:    "plans",
			Portal: core.PortalAdmin,
			Group:  i18n.T("Billing", "الفوترة"),
			Label:  i18n.T("Plans", "الباقات"),
		},
		Columns: []datatable.Column[Plan]{
			{Key: "name", Header: i18n.T("Plan", "الباقة"), Sortable: true},
			{
				Key: "price", Header: i18n.T("Price", "السعر"), Sortable: true, Type: datatable.FieldNumeric,
				Render: func(p Plan, l i18n.Locale) string { return money(p.Price, l) },
			},
			{
				Key: "interval", Header: i18n.T("Billing", "الفوترة"), Sortable: true, Type: datatable.FieldEnum,
				Render: func(p Plan, l i18n.Locale) string { return intervals.label(p.Interval, l) },
			},
			{
				Key: "max_products", Header: i18n.T("Products", "المنتجات"), Sortable: true, Type: datatable.FieldNumeric,
				Render: func(p Plan, l i18n.Locale) string { return optionalInt(p.MaxProducts, l) },
			},
			{
				Key: "commission", Header: i18n.T("Commission", "العمولة"), Sortable: true, Type: datatable.FieldNumeric,
				Render: func(p Plan, _ i18n.Locale) string { return percent(p.Commission) },
			},
			{Key: "subscribers", Header: i18n.T("Subscribers", "المشتركون"), Sortable: true, Type: datatable.FieldNumeric},
			{Key: "active", Header: i18n.T("Active", "مفعل"), Sortable: true, Type: datatable.FieldBool},
		},
		Config: withSort(datatable.SortState{Key: "price", Dir: datatable.Ascending}),
		Actions: []core.ActionFactory[Plan]{
			core.UpdateAction[Plan, int64](core.Update[Plan]{
				Name:  "toggle_active",
				Label: i18n.T("Activate / retire", "تفعيل / إيقاف"),
				Icon:  "power",
				Apply: func(p *Plan) error {
					p.Active = !p.Active
					return nil
				},
			}),
			core.DeleteAction[Plan, int64](),
		},
	}))
}
