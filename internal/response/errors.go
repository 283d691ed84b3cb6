package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrSerialNotFound ErrCode = "SERIAL_NOT_FOUND"
	ErrTokenRequired  ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid   ErrCode = "TOKEN_INVALID"
	ErrTokenExpired   ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrUserNotFound ErrCode = "USER_NOT_FOUND"

	// ─── Exam-specific ─────────────────────────────────────────────────
	ErrExamNotAvailable ErrCode = "EXAM_NOT_AVAILABLE"
	ErrCourseLocked     ErrCode = "COURSE_LOCKED"
	ErrExamBeforeOpen   ErrCode = "EXAM_BEFORE_OPEN"
	ErrExamWindowClosed ErrCode = "EXAM_WINDOW_CLOSED"
	ErrExamNotStarted   ErrCode = "EXAM_NOT_STARTED"
	ErrInvalidSchedule  ErrCode = "INVALID_SCHEDULE"

	// ─── Progress ──────────────────────────────────────────────────────
	ErrProgressSyncFailed ErrCode = "PROGRESS_SYNC_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrSerialNotFound:
		return "الرقم غير موجود في النظام"
	case ErrTokenRequired:
		return "رمز الدخول مطلوب."
	case ErrTokenInvalid:
		return "رمز الدخول غير صالح."
	case ErrTokenExpired:
		return "انتهت صلاحية رمز الدخول."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "ليس لديك صلاحية للوصول إلى هذا المورد."
	case ErrAdminAccessOnly:
		return "هذا المورد مخصص للمشرفين فقط."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "فشل التحقق من البيانات. يرجى مراجعة المدخلات."
	case ErrInvalidID:
		return "صيغة المعرف غير صالحة."
	case ErrInvalidPayload:
		return "محتوى الطلب غير صالح."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "المورد غير موجود."
	case ErrUserNotFound:
		return "المستخدم غير موجود"

	// ─── Exam-specific ─────────────────────────────────────────────────
	case ErrExamNotAvailable:
		return "لا يوجد اختبار لهذه الدورة."
	case ErrCourseLocked:
		return "هذه الدورة غير متاحة في مرحلتك الحالية."
	case ErrExamBeforeOpen:
		return "الامتحانات غير متاحة حالياً. يرجى الانتظار حتى موعد الفتح."
	case ErrExamWindowClosed:
		return "انتهت فترة الامتحانات."
	case ErrExamNotStarted:
		return "لم يبدأ الاختبار بعد."
	case ErrInvalidSchedule:
		return "جدول الامتحانات غير صالح."

	// ─── Progress ──────────────────────────────────────────────────────
	case ErrProgressSyncFailed:
		return "فشل تحديث التقدم"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "عدد كبير جداً من المحاولات. حاول مرة أخرى لاحقاً."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "حدث خطأ داخلي في الخادم."
	default:
		return "حدث خطأ غير متوقع."
	}
}
