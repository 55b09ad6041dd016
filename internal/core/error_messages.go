// Package core provides the list registry and table services.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Messages are bilingual; users quote the code to support staff for faster
// diagnosis.
//
// Error codes are grouped by category:
//
// # List Errors (TBL001-TBL099)
//
//	TBL001 - List not found: The requested list does not exist
//	         Patterns: "unknown list"
//
//	TBL002 - Portal not found: The requested portal does not exist
//	         Patterns: "unknown portal"
//
//	TBL003 - List misconfigured: The list definition is invalid
//	         Patterns: "invalid column descriptor", "invalid row action", "invalid table config"
//
// # Sort and Filter Errors (SORT001-SORT099, FLT001-FLT099)
//
//	SORT001 - Column not sortable
//	          Patterns: "column not sortable"
//
//	FLT001  - Invalid filter: unknown column, unsupported operator or empty value
//	          Patterns: "invalid filter"
//
//	SORT002 - Unknown column
//	          Patterns: "unknown column"
//
// # Selection Errors (SEL001-SEL099)
//
//	SEL001 - Selection disabled for this list
//	         Patterns: "selection disabled"
//
//	SEL002 - Invalid selection scope
//	         Patterns: "invalid selection scope"
//
// # Action Errors (ACT001-ACT099)
//
//	ACT001 - Unknown action
//	         Patterns: "unknown action"
//
//	ACT002 - Record not found: the record was removed or never existed
//	         Patterns: "record not found"
//
//	ACT003 - Action does not apply to the record's status
//	         Patterns: "invalid status change"
//
//	ACT004 - Stock already at target level
//	         Patterns: "nothing to restock"
//
//	ACT005 - Too many row actions running at once
//	         Patterns: "too many concurrent actions"
//
// # Data Source Errors (SRC001-SRC099)
//
//	SRC001 - Duplicate record id in stored data
//	         Patterns: "duplicate record id"
//
//	SRC002 - Stored record could not be read
//	         Patterns: "decode document", "invalid date"
//
// # Request Errors (VAL001, AUTH001, REQ001-REQ002)
//
//	VAL001  - Invalid request body
//	          Patterns: "invalid request"
//
//	AUTH001 - Missing or invalid API key
//	          Patterns: "api key"
//
//	REQ001  - Request cancelled
//	          Patterns: "context canceled"
//
//	REQ002  - Request timed out
//	          Patterns: "context deadline exceeded"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key             Patterns: "duplicate key"
//	DB002 - Unique constraint         Patterns: "unique constraint", "violates unique"
//	DB003 - Foreign key               Patterns: "foreign key"
//	DB004 - Connection refused        Patterns: "connection refused"
//	DB005 - Connection reset          Patterns: "connection reset"
//	DB006 - Timeout                   Patterns: "timeout"
//	DB007 - Deadlock                  Patterns: "deadlock"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Support staff should check
// application logs for the original technical error.
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are defined
// before general ones.
package core

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/storefront/internal/i18n"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message i18n.Text // What happened
	Action  i18n.Text // What to do about it
	Code    string    // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// List Errors (TBL001-TBL003)
	// =========================================================================
	{
		pattern: "unknown list",
		msg: UserMessage{
			Message: i18n.T("List not found", "القائمة غير موجودة"),
			Action:  i18n.T("Return to the dashboard and pick a list", "ارجع إلى لوحة التحكم واختر قائمة"),
			Code:    "TBL001",
		},
	},
	{
		pattern: "unknown portal",
		msg: UserMessage{
			Message: i18n.T("Portal not found", "البوابة غير موجودة"),
			Action:  i18n.T("Check the address and try again", "تحقق من العنوان وحاول مرة أخرى"),
			Code:    "TBL002",
		},
	},
	{
		pattern: "invalid column descriptor",
		msg:     misconfigured,
	},
	{
		pattern: "invalid row action",
		msg:     misconfigured,
	},
	{
		pattern: "invalid table config",
		msg:     misconfigured,
	},

	// =========================================================================
	// Sort and Filter Errors (SORT001-SORT002, FLT001)
	// "invalid filter" must precede "unknown column": filter errors name
	// unknown columns too.
	// =========================================================================
	{
		pattern: "column not sortable",
		msg: UserMessage{
			Message: i18n.T("This column cannot be sorted", "لا يمكن ترتيب هذا العمود"),
			Action:  i18n.T("Sort by another column", "رتّب حسب عمود آخر"),
			Code:    "SORT001",
		},
	},
	{
		pattern: "invalid filter",
		msg: UserMessage{
			Message: i18n.T("The filter is not valid for this column", "عامل التصفية غير صالح لهذا العمود"),
			Action:  i18n.T("Pick a listed operator and enter a value", "اختر عاملاً من القائمة وأدخل قيمة"),
			Code:    "FLT001",
		},
	},
	{
		pattern: "unknown column",
		msg: UserMessage{
			Message: i18n.T("Unknown column", "عمود غير معروف"),
			Action:  i18n.T("Reload the page and try again", "أعد تحميل الصفحة وحاول مرة أخرى"),
			Code:    "SORT002",
		},
	},

	// =========================================================================
	// Selection Errors (SEL001-SEL002)
	// =========================================================================
	{
		pattern: "selection disabled",
		msg: UserMessage{
			Message: i18n.T("Rows in this list cannot be selected", "لا يمكن تحديد صفوف هذه القائمة"),
			Action:  i18n.T("Use the row actions instead", "استخدم إجراءات الصف بدلاً من ذلك"),
			Code:    "SEL001",
		},
	},
	{
		pattern: "invalid selection scope",
		msg: UserMessage{
			Message: i18n.T("Unknown selection scope", "نطاق تحديد غير معروف"),
			Action:  i18n.T("Select the page or all results", "حدد الصفحة أو كل النتائج"),
			Code:    "SEL002",
		},
	},

	// =========================================================================
	// Action Errors (ACT001-ACT005)
	// =========================================================================
	{
		pattern: "unknown action",
		msg: UserMessage{
			Message: i18n.T("This action is not available", "هذا الإجراء غير متاح"),
			Action:  i18n.T("Reload the page and try again", "أعد تحميل الصفحة وحاول مرة أخرى"),
			Code:    "ACT001",
		},
	},
	{
		pattern: "record not found",
		msg: UserMessage{
			Message: i18n.T("The record no longer exists", "السجل لم يعد موجوداً"),
			Action:  i18n.T("Reload the list to see current records", "أعد تحميل القائمة لعرض السجلات الحالية"),
			Code:    "ACT002",
		},
	},
	{
		pattern: "invalid status change",
		msg: UserMessage{
			Message: i18n.T("This action does not apply to the record's current status", "لا ينطبق هذا الإجراء على الحالة الحالية للسجل"),
			Action:  i18n.T("Reload the list to see the latest status", "أعد تحميل القائمة لعرض آخر حالة"),
			Code:    "ACT003",
		},
	},
	{
		pattern: "nothing to restock",
		msg: UserMessage{
			Message: i18n.T("Stock is already at its target level", "المخزون عند المستوى المستهدف بالفعل"),
			Action:  i18n.T("No action is needed", "لا حاجة لأي إجراء"),
			Code:    "ACT004",
		},
	},
	{
		pattern: "too many concurrent actions",
		msg: UserMessage{
			Message: i18n.T("The server is busy with other changes", "الخادم مشغول بتغييرات أخرى"),
			Action:  i18n.T("Wait a few seconds and try again", "انتظر بضع ثوانٍ وحاول مرة أخرى"),
			Code:    "ACT005",
		},
	},

	// =========================================================================
	// Data Source Errors (SRC001-SRC002)
	// =========================================================================
	{
		pattern: "duplicate record id",
		msg: UserMessage{
			Message: i18n.T("Stored data contains duplicate records", "البيانات المخزنة تحتوي على سجلات مكررة"),
			Action:  i18n.T("Contact support with the error code", "تواصل مع الدعم مع ذكر رمز الخطأ"),
			Code:    "SRC001",
		},
	},
	{
		pattern: "decode document",
		msg:     unreadable,
	},
	{
		pattern: "invalid date",
		msg:     unreadable,
	},

	// =========================================================================
	// Request Errors (VAL001, AUTH001, REQ001-REQ002)
	// =========================================================================
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: i18n.T("The request is not valid", "الطلب غير صالح"),
			Action:  i18n.T("Check the submitted values", "تحقق من القيم المرسلة"),
			Code:    "VAL001",
		},
	},
	{
		pattern: "api key",
		msg: UserMessage{
			Message: i18n.T("Missing or invalid API key", "مفتاح API مفقود أو غير صالح"),
			Action:  i18n.T("Provide a valid X-API-Key header", "أرسل ترويسة X-API-Key صالحة"),
			Code:    "AUTH001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: i18n.T("Request was cancelled", "تم إلغاء الطلب"),
			Action:  i18n.T("Please try again", "يرجى المحاولة مرة أخرى"),
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: i18n.T("Request timed out", "انتهت مهلة الطلب"),
			Action:  i18n.T("Please try again", "يرجى المحاولة مرة أخرى"),
			Code:    "REQ002",
		},
	},

	// =========================================================================
	// Database Errors (DB001-DB007)
	// =========================================================================
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: i18n.T("A record with this ID already exists", "يوجد سجل بهذا المعرّف بالفعل"),
			Action:  i18n.T("Reload the list and try again", "أعد تحميل القائمة وحاول مرة أخرى"),
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint",
		msg:     notUnique,
	},
	{
		pattern: "violates unique",
		msg:     notUnique,
	},
	{
		pattern: "foreign key",
		msg: UserMessage{
			Message: i18n.T("Referenced record does not exist", "السجل المشار إليه غير موجود"),
			Action:  i18n.T("Reload the list and try again", "أعد تحميل القائمة وحاول مرة أخرى"),
			Code:    "DB003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: i18n.T("Unable to connect to database", "تعذر الاتصال بقاعدة البيانات"),
			Action:  i18n.T("Please try again in a few moments", "يرجى المحاولة بعد لحظات"),
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: i18n.T("Database connection was interrupted", "انقطع الاتصال بقاعدة البيانات"),
			Action:  i18n.T("Please try again", "يرجى المحاولة مرة أخرى"),
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: i18n.T("Operation timed out", "انتهت مهلة العملية"),
			Action:  i18n.T("Please try again later", "يرجى المحاولة لاحقاً"),
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: i18n.T("Database was busy with conflicting operations", "قاعدة البيانات مشغولة بعمليات متعارضة"),
			Action:  i18n.T("Please try again", "يرجى المحاولة مرة أخرى"),
			Code:    "DB007",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: i18n.T("Too many requests", "طلبات كثيرة جداً"),
			Action:  i18n.T("Please wait a moment before trying again", "يرجى الانتظار قليلاً قبل المحاولة مرة أخرى"),
			Code:    "RATE001",
		},
	},
}

var (
	misconfigured = UserMessage{
		Message: i18n.T("This list is misconfigured", "هذه القائمة غير مهيأة بشكل صحيح"),
		Action:  i18n.T("Contact support with the error code", "تواصل مع الدعم مع ذكر رمز الخطأ"),
		Code:    "TBL003",
	}
	unreadable = UserMessage{
		Message: i18n.T("A stored record could not be read", "تعذرت قراءة سجل مخزن"),
		Action:  i18n.T("Contact support with the error code", "تواصل مع الدعم مع ذكر رمز الخطأ"),
		Code:    "SRC002",
	}
	notUnique = UserMessage{
		Message: i18n.T("This value must be unique but already exists", "يجب أن تكون هذه القيمة فريدة لكنها موجودة بالفعل"),
		Action:  i18n.T("Reload the list and try again", "أعد تحميل القائمة وحاول مرة أخرى"),
		Code:    "DB002",
	}
)

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: i18n.T("An unexpected error occurred", "حدث خطأ غير متوقع"),
	Action:  i18n.T("Please try again or contact support", "يرجى المحاولة مرة أخرى أو التواصل مع الدعم"),
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
//
//	msg := MapError(fmt.Errorf("sort: %w", datatable.ErrColumnNotSortable))
//	// msg.Code == "SORT001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display in locale l.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error, l i18n.Locale) string {
	msg := MapError(err)
	if msg.Code == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message.In(l), msg.Code, msg.Action.In(l))
}

// IsUserFacing reports whether err matches a known pattern rather than the
// generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message.EN
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
