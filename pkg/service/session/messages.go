package session

import (
	"errors"

	"github.com/kingstore/api/pkg/domain"
	"github.com/kingstore/api/pkg/provider/identity"
)

// User-facing success messages. The storefront ships in Arabic; these are
// the exact strings the UI renders.
const (
	MsgLoginSuccess    = "تم تسجيل الدخول بنجاح"
	MsgRegisterSuccess = "تم التسجيل بنجاح!"
	MsgPurchaseSuccess = "تمت عملية الشراء بنجاح! سيقوم الأدمن بشحن حسابك قريباً."
)

const (
	msgLoginFailed         = "البريد الإلكتروني أو كلمة المرور غير صحيحة."
	msgUsernameTaken       = "اسم المستخدم هذا موجود بالفعل. الرجاء اختيار اسم آخر."
	msgEmailInUse          = "هذا البريد الإلكتروني مستخدم بالفعل."
	msgWeakPassword        = "كلمة المرور ضعيفة جدًا (6+ أحرف)."
	msgRegisterFailed      = "فشل التسجيل. يرجى المحاولة مرة أخرى."
	msgMustLogIn           = "يجب عليك تسجيل الدخول أولاً."
	msgOfferNotFound       = "العرض غير موجود."
	msgInsufficientBalance = "رصيدك غير كافٍ لإتمام عملية الشراء."
	msgGenericFailure      = "حدث خطأ. يرجى المحاولة مرة أخرى."
)

// Localize maps a controller error to the message shown to the end user.
// Invalid credentials collapse into one message regardless of whether the
// email or the password was wrong, so the response does not reveal which
// accounts exist.
func Localize(err error) string {
	if ae, ok := identity.AsAuthError(err); ok {
		switch ae.Code {
		case identity.CodeInvalidCredentials:
			return msgLoginFailed
		case identity.CodeEmailAlreadyInUse:
			return msgEmailInUse
		case identity.CodeWeakPassword:
			return msgWeakPassword
		}
	}
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return msgUsernameTaken
	case errors.Is(err, domain.ErrNotAuthenticated):
		return msgMustLogIn
	case errors.Is(err, domain.ErrOfferNotFound):
		return msgOfferNotFound
	case errors.Is(err, domain.ErrInsufficientBalance):
		return msgInsufficientBalance
	case errors.Is(err, domain.ErrUsernameRequired):
		return msgRegisterFailed
	default:
		return msgGenericFailure
	}
}
