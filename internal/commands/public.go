package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/bankgold/bankgold/internal/apperrors"
	"github.com/bankgold/bankgold/internal/core/domain"
	"github.com/shopspring/decimal"
)

// handlePublic routes non-admin commands. A few shapes work without a login
// session; everything else answers the welcome text until the caller logs in.
func (d *Dispatcher) handlePublic(ctx context.Context, senderID, command string) string {
	loggedIn := d.sessions.IsLoggedIn(senderID)

	switch {
	case command == "معرفي":
		return myIDReply(senderID)

	case command == "مساعدة", command == "اوامر":
		return d.helpReply(ctx, senderID)

	case strings.HasPrefix(command, "تعديل كلمة السر"):
		return d.handleChangePassword(ctx, senderID, command)

	case command == "تسجيل خروج":
		if !loggedIn {
			return welcomeReply()
		}
		d.sessions.Logout(senderID)
		return logoutReply

	case strings.HasPrefix(command, "تسجيل"):
		return d.handleLogin(ctx, senderID, command)

	case command == "رصيدي":
		return d.handleMyBalance(ctx, senderID)

	case strings.HasPrefix(command, "تواصل"):
		return contactReply

	case command == "حالتي":
		if !loggedIn {
			return welcomeReply()
		}
		return d.handleMyAccount(ctx, senderID)

	case command == "حالة النظام":
		if !loggedIn {
			return welcomeReply()
		}
		return d.handleSystemStatus(ctx)

	case strings.HasPrefix(command, "تحويل"):
		if !loggedIn {
			return welcomeReply()
		}
		return d.handleTransfer(ctx, senderID, command, false)

	case loggedIn:
		return unknownCommandReply(command)

	default:
		return welcomeReply()
	}
}

func (d *Dispatcher) handleLogin(ctx context.Context, senderID, command string) string {
	m := loginRe.FindStringSubmatch(command)
	if m == nil {
		return loginUsageReply
	}
	code := strings.ToUpper(m[1])
	password := m[2]

	acc, activated, err := d.ledger.Login(ctx, senderID, code, password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return wrongCodeReply
		case errors.Is(err, apperrors.ErrAccountBanned):
			return bannedLoginReply
		case errors.Is(err, apperrors.ErrForbidden):
			return wrongPasswordReply
		default:
			return d.errorReply(ctx, err, code)
		}
	}

	d.sessions.Login(senderID)

	if activated {
		return loginActivatedReply(acc, d.cfg.Currency)
	}
	return loginReply(acc, d.cfg.Currency)
}

func (d *Dispatcher) handleMyBalance(ctx context.Context, senderID string) string {
	acc, err := d.ledger.FindByOwner(ctx, senderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return noAccountReply
		}
		return d.errorReply(ctx, err, "")
	}
	return myBalanceReply(acc, d.cfg.Currency)
}

func (d *Dispatcher) handleMyAccount(ctx context.Context, senderID string) string {
	acc, err := d.ledger.FindByOwner(ctx, senderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return noAccountReply
		}
		return d.errorReply(ctx, err, "")
	}
	return myAccountReply(acc, d.cfg.Currency)
}

// handleTransfer serves both contexts; admins bypass the transfers toggle.
func (d *Dispatcher) handleTransfer(ctx context.Context, senderID, command string, isAdmin bool) string {
	if !d.settings.Snapshot().TransfersEnabled && !isAdmin {
		return transfersDisabledReply
	}

	m := transferRe.FindStringSubmatch(command)
	if m == nil {
		return transferUsageReply
	}
	amount, err := decimal.NewFromString(m[1])
	if err != nil || !amount.IsPositive() {
		return "❌ المبلغ يجب أن يكون أكبر من الصفر"
	}
	toCode := strings.ToUpper(m[2])

	res, err := d.ledger.Transfer(ctx, senderID, toCode, amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			return insufficientReply
		case errors.Is(err, apperrors.ErrNotFound):
			return recipientMissingReply
		case errors.Is(err, apperrors.ErrAccountBanned):
			return recipientBannedReply
		default:
			return d.errorReply(ctx, err, toCode)
		}
	}
	return transferReply(res, d.cfg.Currency)
}

func (d *Dispatcher) handleChangePassword(ctx context.Context, senderID, command string) string {
	m := changePasswordRe.FindStringSubmatch(command)
	if m == nil {
		return changePasswordUsageReply
	}
	code := strings.ToUpper(m[1])
	newPassword := m[2]

	if len(newPassword) < 4 {
		return shortPasswordReply
	}

	// An archive-only code is activated by the password change itself.
	acc, err := d.ledger.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return accountMissingReply(code)
		}
		return d.errorReply(ctx, err, code)
	}
	if acc.Source == domain.SourceArchive {
		if _, err := d.ledger.ResolveAndMaterialize(ctx, senderID, code, senderID, newPassword); err != nil {
			return d.errorReply(ctx, err, code)
		}
		return "✅ تم إنشاء وتفعيل الحساب من الأرشيف!\nالكود: " + code + "\nكلمة السر الجديدة: " + newPassword
	}

	if err := d.ledger.ChangePassword(ctx, senderID, code, newPassword); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return "❌ ليس لديك صلاحية لتعديل كلمة السر لهذا الحساب"
		}
		return d.errorReply(ctx, err, code)
	}
	return passwordChangedReply(code, newPassword)
}
