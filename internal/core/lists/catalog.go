package lists

import (
	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

var catalog = i18n.T("Catalog", "الكتالوج")

func init() {
	registerInventory()
	registerSpecGroups()
}

// inventoryColumns are shared by the admin and seller inventory lists.
func inventoryColumns(withSeller bool) []datatable.Column[InventoryItem] {
	cols := []datatable.Column[InventoryItem]{
		{Key: "sku", Header: i18n.T("SKU", "رمز المنتج"), Sortable: true, Natural: true, MinWidth: "7rem"},
		{Key: "product", Header: i18n.T("Product", "المنتج"), Sortable: true},
	}
	if withSeller {
		cols = append(cols, datatable.Column[InventoryItem]{
			Key: "seller", Header: i18n.T("Seller", "البائع"), Sortable: true, Type: datatable.FieldEnum,
		})
	}
	return append(cols,
		datatable.Column[InventoryItem]{Key: "warehouse", Header: i18n.T("Warehouse", "المستودع"), Sortable: true, Type: datatable.FieldEnum},
		datatable.Column[InventoryItem]{Key: "quantity", Header: i18n.T("On hand", "الكمية"), Sortable: true, Type: datatable.FieldNumeric},
		datatable.Column[InventoryItem]{
			Key: "available", Header: i18n.T("Available", "المتاح"), Sortable: true, Type: datatable.FieldNumeric,
			Value: func(i InventoryItem) any { return i.Available() },
		},
		datatable.Column[InventoryItem]{
			Key: "level", Header: i18n.T("Stock level", "حالة المخزون"), Type: datatable.FieldEnum,
			Value:  func(i InventoryItem) any { return i.StockLevel() },
			Render: func(i InventoryItem, l i18n.Locale) string { return stockLevels.label(i.StockLevel(), l) },
		},
		datatable.Column[InventoryItem]{
			Key: "price", Header: i18n.T("Price", "السعر"), Sortable: true, Type: datatable.FieldNumeric,
			Render: func(i InventoryItem, l i18n.Locale) string { return money(i.Price, l) },
		},
		datatable.Column[InventoryItem]{Key: "updated", Header: i18n.T("Updated", "آخر تحديث"), Sortable: true, Type: datatable.FieldDate},
	)
}

// restock sets the quantity so that the available stock is twice the
// reorder level.
func restock(i *InventoryItem) error {
	target := i.Reserved + 2*i.Reorder
	if i.Quantity >= target {
		return ErrNothingToRestock
	}
	i.Quantity = target
	return nil
}

func inventoryActions() []core.ActionFactory[InventoryItem] {
	return []core.ActionFactory[InventoryItem]{
		core.UpdateAction[InventoryItem, int64](core.Update[InventoryItem]{
			Name:  "restock",
			Label: i18n.T("Restock", "إعادة التخزين"),
			Icon:  "package",
			Color: "primary",
			Apply: restock,
		}),
		core.DeleteAction[InventoryItem, int64](),
	}
}

func registerInventory() {
	core.Register(core.MustBind(core.Definition[InventoryItem, int64]{
		Info: core.ListInfo{
			Key:    "inventory",
			Portal: core.PortalAdmin,
			Group:  catalog,
			Label:  i18n.T("Inventory", "المخزون"),
		},
		Columns: inventoryColumns(true),
		Config:  withSort(datatable.SortState{Key: "sku", Dir: datatable.Ascending}),
		Actions: inventoryActions(),
	}))
}

func registerSpecGroups() {
	core.Register(core.MustBind(core.Definition[SpecGroup, int64]{
		Info: core.ListInfo{
			Key:    "spec_groups",
			Portal: core.PortalAdmin,
			Group:  catalog,
			Label:  i18n.T("Specification Groups", "مجموعات المواصفات"),
		},
		Columns: []datatable.Column[SpecGroup]{
			{Key: "position", Header: i18n.T("#", "#"), Sortable: true, Type: datatable.FieldNumeric, MinWidth: "3rem"},
			{Key: "name", Header: i18n.T("Name", "الاسم"), Sortable: true},
			{Key: "category", Header: i18n.T("Category", "الفئة"), Sortable: true},
			{
				Key: "attributes", Header: i18n.T("Attributes", "الخصائص"),
				Render: func(s SpecGroup, l i18n.Locale) string { return joined(s.Attributes, l) },
			},
			{
				Key: "attribute_count", Header: i18n.T("Count", "العدد"), Sortable: true, Type: datatable.FieldNumeric,
				Value:  func(s SpecGroup) any { return len(s.Attributes) },
				Render: func(s SpecGroup, l i18n.Locale) string { return i18n.FormatNumber(l, len(s.Attributes)) },
			},
			{Key: "visible", Header: i18n.T("Visible", "ظاهر"), Sortable: true, Type: datatable.FieldBool},
		},
		Config: withSort(datatable.SortState{Key: "position", Dir: datatable.Ascending}),
		Actions: []core.ActionFactory[SpecGroup]{
			core.UpdateAction[SpecGroup, int64](core.Update[SpecGroup]{
				Name:  "toggle_visible",
				Label: i18n.T("Show / hide", "إظهار / إخفاء"),
				Icon:  "eye",
				Apply: func(s *SpecGroup) error {
					s.Visible = !s.Visible
					return nil
				},
			}),
			core.DeleteAction[SpecGroup, int64](),
		},
	}))
}
