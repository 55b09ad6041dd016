package lists

import (
	"time"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

var sales = i18n.T("Sales", "المبيعات")

// now is replaced in tests.
var now = time.Now

func init() {
	registerOrders()
	registerReturns()
	registerShipments()
}

func orderStatus(o *Order) *string   { return &o.Status }
func returnStatus(r *Return) *string { return &r.Status }

// orderColumns lists the order columns; the party columns are left out of
// portals that only ever see their own side of an order.
func orderColumns(withCustomer, withSeller bool) []datatable.Column[Order] {
	cols := []datatable.Column[Order]{
		{Key: "id", Header: i18n.T("Order", "الطلب"), Sortable: true, Natural: true, MinWidth: "7rem"},
		{Key: "placed", Header: i18n.T("Placed", "تاريخ الطلب"), Sortable: true, Type: datatable.FieldDate},
	}
	if withCustomer {
		cols = append(cols, datatable.Column[Order]{
			Key: "customer_name", Header: i18n.T("Customer", "العميل"), Sortable: true,
		})
	}
	if withSeller {
		cols = append(cols, datatable.Column[Order]{
			Key: "seller", Header: i18n.T("Seller", "البائع"), Sortable: true, Type: datatable.FieldEnum,
		})
	}
	return append(cols,
		datatable.Column[Order]{Key: "items", Header: i18n.T("Items", "العناصر"), Sortable: true, Type: datatable.FieldNumeric},
		datatable.Column[Order]{
			Key: "total", Header: i18n.T("Total", "الإجمالي"), Sortable: true, Type: datatable.FieldNumeric,
			Render: func(o Order, l i18n.Locale) string { return money(o.Total, l) },
		},
		datatable.Column[Order]{
			Key: "payment", Header: i18n.T("Payment", "الدفع"), Type: datatable.FieldEnum,
			Render: func(o Order, l i18n.Locale) string { return paymentMethods.label(o.Payment, l) },
		},
		datatable.Column[Order]{
			Key: "status", Header: i18n.T("Status", "الحالة"), Sortable: true, Type: datatable.FieldEnum,
			Render: func(o Order, l i18n.Locale) string { return orderStatuses.label(o.Status, l) },
		},
	)
}

func cancelOrder(from ...string) core.ActionFactory[Order] {
	return core.UpdateAction[Order, string](core.Update[Order]{
		Name:    "cancel",
		Label:   i18n.T("Cancel", "إلغاء"),
		Icon:    "x",
		Color:   "danger",
		Confirm: i18n.T("Cancel this order?", "هل تريد إلغاء هذا الطلب؟"),
		Apply:   transition(orderStatus, "cancelled", from...),
	})
}

func shipOrder() core.ActionFactory[Order] {
	return core.UpdateAction[Order, string](core.Update[Order]{
		Name:  "ship",
		Label: i18n.T("Mark shipped", "تعيين كمشحون"),
		Icon:  "truck",
		Color: "primary",
		Apply: transition(orderStatus, "shipped", "processing"),
	})
}

func returnColumns(withCustomer bool) []datatable.Column[Return] {
	cols := []datatable.Column[Return]{
		{Key: "id", Header: i18n.T("Return", "المرتجع"), Sortable: true, Natural: true, MinWidth: "7rem"},
		{Key: "order", Header: i18n.T("Order", "الطلب"), Sortable: true, Natural: true},
	}
	if withCustomer {
		cols = append(cols, datatable.Column[Return]{
			Key: "customer_name", Header: i18n.T("Customer", "العميل"), Sortable: true,
		})
	}
	return append(cols,
		datatable.Column[Return]{Key: "product", Header: i18n.T("Product", "المنتج"), Sortable: true},
		datatable.Column[Return]{
			Key: "reason", Header: i18n.T("Reason", "السبب"), Type: datatable.FieldEnum,
			Render: func(r Return, l i18n.Locale) string { return returnReasons.label(r.Reason, l) },
		},
		datatable.Column[Return]{
			Key: "amount", Header: i18n.T("Amount", "المبلغ"), Sortable: true, Type: datatable.FieldNumeric,
			Render: func(r Return, l i18n.Locale) string { return money(r.Amount, l) },
		},
		datatable.Column[Return]{
			Key: "status", Header: i18n.T("Status", "الحالة"), Sortable: true, Type: datatable.FieldEnum,
			Render: func(r Return, l i18n.Locale) string { return returnStatuses.label(r.Status, l) },
		},
		datatable.Column[Return]{Key: "requested", Header: i18n.T("Requested", "تاريخ الطلب"), Sortable: true, Type: datatable.FieldDate},
	)
}

func registerOrders() {
	core.Register(core.MustBind(core.Definition[Order, string]{
		Info: core.ListInfo{
			Key:    "orders",
			Portal: core.PortalAdmin,
			Group:  sales,
			Label:  i18n.T("Orders", "الطلبات"),
		},
		Columns: orderColumns(true, true),
		Config:  withSort(datatable.SortState{Key: "placed", Dir: datatable.Descending}),
		Actions: []core.ActionFactory[Order]{
			shipOrder(),
			cancelOrder("pending", "processing"),
			core.DeleteAction[Order, string](),
		},
	}))
}

func registerReturns() {
	core.Register(core.MustBind(core.Definition[Return, string]{
		Info: core.ListInfo{
			Key:    "returns",
			Portal: core.PortalAdmin,
			Group:  sales,
			Label:  i18n.T("Returns", "المرتجعات"),
		},
		Columns: returnColumns(true),
		Config:  withSort(datatable.SortState{Key: "requested", Dir: datatable.Descending}),
		Actions: []core.ActionFactory[Return]{
			core.UpdateAction[Return, string](core.Update[Return]{
				Name:  "approve",
				Label: i18n.T("Approve", "موافقة"),
				Icon:  "check",
				Color: "success",
				Apply: transition(returnStatus, "approved", "requested"),
			}),
			core.UpdateAction[Return, string](core.Update[Return]{
				Name:    "reject",
				Label:   i18n.T("Reject", "رفض"),
				Icon:    "x",
				Color:   "danger",
				Confirm: i18n.T("Reject this return request?", "هل تريد رفض طلب الإرجاع هذا؟"),
				Apply:   transition(returnStatus, "rejected", "requested"),
			}),
			core.UpdateAction[Return, string](core.Update[Return]{
				Name:  "refund",
				Label: i18n.T("Refund", "استرداد"),
				Icon:  "cash",
				Color: "primary",
				Apply: transition(returnStatus, "refunded", "approved"),
			}),
		},
	}))
}

// deliver marks a shipment delivered today.
func deliver(s *Shipment) error {
	if err := transition(func(s *Shipment) *string { return &s.Status }, "delivered", "in_transit", "out_for_delivery")(s); err != nil {
		return err
	}
	today := core.NewDate(now().Date())
	s.Delivered = &today
	return nil
}

func registerShipments() {
	core.Register(core.MustBind(core.Definition[Shipment, string]{
		Info: core.ListInfo{
			Key:    "shipments",
			Portal: core.PortalAdmin,
			Group:  sales,
			Label:  i18n.T("Shipments", "الشحنات"),
		},
		Columns: []datatable.Column[Shipment]{
			{Key: "id", Header: i18n.T("Shipment", "الشحنة"), Sortable: true, Natural: true, MinWidth: "7rem"},
			{Key: "order", Header: i18n.T("Order", "الطلب"), Sortable: true, Natural: true},
			{Key: "carrier", Header: i18n.T("Carrier", "شركة الشحن"), Sortable: true, Type: datatable.FieldEnum},
			{Key: "tracking", Header: i18n.T("Tracking", "رقم التتبع")},
			{Key: "destination", Header: i18n.T("Destination", "الوجهة"), Sortable: true},
			{
				Key: "status", Header: i18n.T("Status", "الحالة"), Sortable: true, Type: datatable.FieldEnum,
				Render: func(s Shipment, l i18n.Locale) string { return shipmentStatuses.label(s.Status, l) },
			},
			{
				Key: "shipped", Header: i18n.T("Shipped", "تاريخ الشحن"), Sortable: true, Type: datatable.FieldDate,
				Render: func(s Shipment, _ i18n.Locale) string { return optionalDate(s.Shipped) },
			},
			{
				Key: "delivered", Header: i18n.T("Delivered", "تاريخ التوصيل"), Sortable: true, Type: datatable.FieldDate,
				Render: func(s Shipment, _ i18n.Locale) string { return optionalDate(s.Delivered) },
			},
		},
		Config: withSort(datatable.SortState{Key: "shipped", Dir: datatable.Descending}),
		Actions: []core.ActionFactory[Shipment]{
			core.UpdateAction[Shipment, string](core.Update[Shipment]{
				Name:  "deliver",
				Label: i18n.T("Mark delivered", "تعيين كمُسلَّم"),
				Icon:  "check",
				Color: "success",
				Apply: deliver,
			}),
		},
	}))
}
