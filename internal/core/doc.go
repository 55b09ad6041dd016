// Package core ties the table engine to the storefront's lists.
//
// This package contains the domain logic independent of any UI or transport
// layer. It can be used by web handlers, the CLI, or tests without
// modification.
//
// # Architecture
//
//   - Lists: registered via the registry, each list binds typed records,
//     column descriptors and row actions to a backend document kind.
//   - Backends: where documents live. [MemoryBackend] serves the embedded
//     fixtures, [CachedBackend] fronts any backend with an expiring LRU, and
//     the store package provides Postgres.
//   - Service: the entry point for every table interaction (page, sort,
//     filter, select, act, export).
//
// # List Registry
//
// Lists are registered at init time using [Register] and [MustBind]:
//
//	core.Register(core.MustBind(core.Definition[Discount, int64]{
//	    Info: core.ListInfo{Key: "discounts", Portal: core.PortalAdmin, ...},
//	    Columns: []datatable.Column[Discount]{
//	        {Key: "code", Header: i18n.T("Code", "الرمز"), Sortable: true},
//	    },
//	    Actions: []core.ActionFactory[Discount]{core.DeleteAction[Discount, int64]()},
//	}))
//
// # Stateless Interaction
//
// The Service keeps no per-user state. Each call receives the caller's last
// [datatable.State], reopens the list against fresh documents, restores the
// state, applies one interaction, and returns the rendered view together
// with the next state. The web layer stores that state per session.
//
// # Error Handling
//
// Technical errors are mapped to bilingual user-facing messages using
// [MapError]. Each error category has a unique code for support reference:
//
//   - TBL: unknown or misconfigured lists
//   - SORT, FLT: sort and filter requests
//   - SEL, ACT: selection and row actions
//   - SRC, DB: stored data and database failures
//   - VAL, AUTH, REQ, RATE: request problems
package core
