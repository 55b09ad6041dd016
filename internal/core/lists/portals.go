package lists

import (
	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

// Seller and customer lists reuse the admin columns and only show the
// records of the portal's account.

func init() {
	registerSellerOrders()
	registerSellerInventory()
	registerCustomerOrders()
	registerCustomerReturns()
}

func registerSellerOrders() {
	core.Register(core.MustBind(core.Definition[Order, string]{
		Info: core.ListInfo{
			Key:    "seller_orders",
			Kind:   "orders",
			Portal: core.PortalSeller,
			Group:  sales,
			Label:  i18n.T("My Orders", "طلباتي"),
		},
		Columns: orderColumns(true, false),
		Config:  withSort(datatable.SortState{Key: "placed", Dir: datatable.Descending}),
		Actions: []core.ActionFactory[Order]{
			core.UpdateAction[Order, string](core.Update[Order]{
				Name:  "process",
				Label: i18n.T("Start processing", "بدء المعالجة"),
				Icon:  "play",
				Color: "primary",
				Apply: transition(orderStatus, "processing", "pending"),
			}),
			shipOrder(),
		},
		Where: ownedBy(func(o Order) string { return o.Seller }),
	}))
}

func registerSellerInventory() {
	core.Register(core.MustBind(core.Definition[InventoryItem, int64]{
		Info: core.ListInfo{
			Key:    "seller_inventory",
			Kind:   "inventory",
			Portal: core.PortalSeller,
			Group:  catalog,
			Label:  i18n.T("My Inventory", "مخزوني"),
		},
		Columns: inventoryColumns(false),
		Config:  withSort(datatable.SortState{Key: "available", Dir: datatable.Ascending}),
		Actions: inventoryActions(),
		Where:   ownedBy(func(i InventoryItem) string { return i.Seller }),
	}))
}

func registerCustomerOrders() {
	core.Register(core.MustBind(core.Definition[Order, string]{
		Info: core.ListInfo{
			Key:    "customer_orders",
			Kind:   "orders",
			Portal: core.PortalCustomer,
			Group:  i18n.T("My Account", "حسابي"),
			Label:  i18n.T("My Orders", "طلباتي"),
		},
		Columns: orderColumns(false, false),
		Config:  withSort(datatable.SortState{Key: "placed", Dir: datatable.Descending}),
		Actions: []core.ActionFactory[Order]{
			cancelOrder("pending"),
		},
		Where: ownedBy(func(o Order) string { return o.Customer }),
	}))
}

func registerCustomerReturns() {
	cfg := withSort(datatable.SortState{Key: "requested", Dir: datatable.Descending})
	cfg.Selectable = false

	core.Register(core.MustBind(core.Definition[Return, string]{
		Info: core.ListInfo{
			Key:    "customer_returns",
			Kind:   "returns",
			Portal: core.PortalCustomer,
			Group:  i18n.T("My Account", "حسابي"),
			Label:  i18n.T("My Returns", "مرتجعاتي"),
		},
		Columns: returnColumns(false),
		Config:  cfg,
		Where:   ownedBy(func(r Return) string { return r.Customer }),
	}))
}
