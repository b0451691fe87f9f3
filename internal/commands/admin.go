package commands

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bankgold/bankgold/internal/apperrors"
	"github.com/bankgold/bankgold/internal/core/domain"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
	"github.com/bankgold/bankgold/internal/middleware"
	"github.com/shopspring/decimal"
)

// handleAdmin routes admin-context commands. Permission-gated shapes answer a
// fixed denial text rather than pretending not to exist.
func (d *Dispatcher) handleAdmin(ctx context.Context, senderID, command string) string {
	has := func(p domain.Permission) bool { return d.authz.HasPermission(senderID, p) }

	switch {
	case strings.HasPrefix(command, "انشاء"):
		if !has(domain.PermCreate) {
			return permissionDeniedReply
		}
		return d.handleCreate(ctx, senderID, command)

	case strings.HasPrefix(command, "تحويل"):
		if !has(domain.PermTransfer) {
			return permissionDeniedReply
		}
		return d.handleTransfer(ctx, senderID, command, true)

	case strings.HasPrefix(command, "فك حظر"):
		if !has(domain.PermUnban) {
			return permissionDeniedReply
		}
		return d.handleUnban(ctx, senderID, command)

	case strings.HasPrefix(command, "حظر"):
		if !has(domain.PermBan) {
			return permissionDeniedReply
		}
		return d.handleBan(ctx, senderID, command)

	case command == "مجموع":
		if !d.authz.IsSuperAdmin(senderID) {
			return permissionDeniedReply
		}
		return d.handleTotals(ctx)

	case strings.HasPrefix(command, "ارشيف"):
		if !has(domain.PermArchive) {
			return permissionDeniedReply
		}
		return d.handleArchive(ctx, command)

	case strings.HasPrefix(command, "خصم"):
		if !has(domain.PermDeduct) {
			return permissionDeniedReply
		}
		return d.handleDeduct(ctx, senderID, command)

	case command == "رصيدي":
		return d.handleMyBalance(ctx, senderID)

	case strings.HasPrefix(command, "رصيد"):
		if !has(domain.PermBalance) {
			return permissionDeniedReply
		}
		return d.handleBalance(ctx, command)

	case strings.HasPrefix(command, "اضافة"):
		if !has(domain.PermAdd) {
			return permissionDeniedReply
		}
		return d.handleAdd(ctx, senderID, command)

	case strings.HasPrefix(command, "ايقاف"), strings.HasPrefix(command, "تشغيل"):
		return d.handleSystemControl(ctx, senderID, command)

	case strings.HasPrefix(command, "ربط"):
		if !has(domain.PermLink) {
			return permissionDeniedReply
		}
		return d.handleLink(ctx, senderID, command)

	case strings.HasPrefix(command, "اضف مشرف"):
		return d.handleAddAdmin(senderID, command)

	case strings.HasPrefix(command, "احذف مشرف"):
		return d.handleRemoveAdmin(senderID, command)

	case strings.HasPrefix(command, "تعديل كلمة السر"):
		return d.handleChangePassword(ctx, senderID, command)

	case strings.HasPrefix(command, "تعديل"):
		if !has(domain.PermSetBalance) {
			return permissionDeniedReply
		}
		return d.handleModify(ctx, senderID, command)

	case command == "معرفي":
		return myIDReply(senderID)

	case command == "توب":
		if !d.authz.IsSuperAdmin(senderID) {
			return permissionDeniedReply
		}
		return d.handleTop(ctx)

	case command == "اجمالي", command == "الكل":
		if !d.authz.IsSuperAdmin(senderID) {
			return permissionDeniedReply
		}
		return d.handleTotalGold(ctx)

	case command == "محظورين":
		if !has(domain.PermListBanned) {
			return permissionDeniedReply
		}
		return d.handleBannedList(ctx)

	case command == "مساعدة", command == "اوامر":
		return d.helpReply(ctx, senderID)

	case command == "حالة النظام":
		return d.handleSystemStatus(ctx)

	default:
		return unknownCommandReply(command)
	}
}

func (d *Dispatcher) handleCreate(ctx context.Context, senderID, command string) string {
	if !d.settings.Snapshot().CreateEnabled && !d.authz.IsSuperAdmin(senderID) {
		return createDisabledReply
	}

	parts := strings.Fields(command)
	if len(parts) < 2 {
		return createUsageReply
	}
	username := strings.TrimSpace(strings.Join(parts[1:], " "))

	acc, err := d.ledger.CreateAccount(ctx, senderID, portssvc.CreateAccountParams{Username: username})
	if err != nil {
		return d.errorReply(ctx, err, "")
	}
	return createdReply(acc, d.cfg.Currency)
}

func (d *Dispatcher) handleBan(ctx context.Context, senderID, command string) string {
	m := banRe.FindStringSubmatch(command)
	if m == nil {
		return banUsageReply
	}
	code := strings.ToUpper(m[1])

	if err := d.ledger.SetStatus(ctx, senderID, code, domain.StatusBanned); err != nil {
		return d.errorReply(ctx, err, code)
	}
	return bannedReply(code)
}

func (d *Dispatcher) handleUnban(ctx context.Context, senderID, command string) string {
	m := unbanRe.FindStringSubmatch(command)
	if m == nil {
		return unbanUsageReply
	}
	code := strings.ToUpper(m[1])

	if err := d.ledger.SetStatus(ctx, senderID, code, domain.StatusActive); err != nil {
		return d.errorReply(ctx, err, code)
	}
	return unbannedReply(code)
}

func (d *Dispatcher) handleArchive(ctx context.Context, command string) string {
	m := archiveRe.FindStringSubmatch(command)
	if m == nil {
		return archiveUsageReply
	}
	series := strings.ToUpper(m[1])
	number, _ := strconv.Atoi(m[2])
	pageIndex := 1
	if m[3] != "" {
		pageIndex, _ = strconv.Atoi(m[3])
	}

	view, err := d.archive.ListPage(ctx, series, number, pageIndex)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			pages, listErr := d.archive.AvailablePages(ctx, series)
			if listErr != nil {
				return d.errorReply(ctx, listErr, "")
			}
			return archiveMissingReply(series, number, pages)
		}
		return d.errorReply(ctx, err, "")
	}
	return archivePageReply(view, d.cfg.Currency)
}

func (d *Dispatcher) handleDeduct(ctx context.Context, senderID, command string) string {
	m := deductRe.FindStringSubmatch(command)
	if m == nil {
		return deductUsageReply
	}
	amount, err := decimal.NewFromString(m[1])
	if err != nil || !amount.IsPositive() {
		return deductUsageReply
	}
	code := strings.ToUpper(m[2])

	newBalance, err := d.ledger.AdjustBalance(ctx, senderID, code, amount.Neg())
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			return "❌ الرصيد غير كاف للخصم"
		}
		return d.errorReply(ctx, err, code)
	}
	return deductedReply(code, amount, newBalance, d.cfg.Currency)
}

func (d *Dispatcher) handleAdd(ctx context.Context, senderID, command string) string {
	m := addRe.FindStringSubmatch(command)
	if m == nil {
		return addUsageReply
	}
	amount, err := decimal.NewFromString(m[1])
	if err != nil || !amount.IsPositive() {
		return addUsageReply
	}
	code := strings.ToUpper(m[2])

	newBalance, err := d.ledger.AdjustBalance(ctx, senderID, code, amount)
	if err != nil {
		return d.errorReply(ctx, err, code)
	}
	return addedReply(code, amount, newBalance, d.cfg.Currency)
}

func (d *Dispatcher) handleBalance(ctx context.Context, command string) string {
	m := balanceRe.FindStringSubmatch(command)
	if m == nil {
		return balanceUsageReply
	}
	code := strings.ToUpper(m[1])

	acc, err := d.ledger.FindByCode(ctx, code)
	if err != nil {
		return d.errorReply(ctx, err, code)
	}
	return balanceReply(acc, d.cfg.Currency)
}

func (d *Dispatcher) handleModify(ctx context.Context, senderID, command string) string {
	m := modifyRe.FindStringSubmatch(command)
	if m == nil {
		return modifyUsageReply
	}
	code := strings.ToUpper(m[1])
	newBalance, err := decimal.NewFromString(m[2])
	if err != nil {
		return modifyUsageReply
	}
	if newBalance.IsNegative() {
		return negativeBalanceReply
	}

	prev, err := d.ledger.SetBalance(ctx, senderID, code, newBalance)
	if err != nil {
		return d.errorReply(ctx, err, code)
	}
	return modifiedReply(code, newBalance, prev, d.cfg.Currency)
}

func (d *Dispatcher) handleLink(ctx context.Context, senderID, command string) string {
	m := linkRe.FindStringSubmatch(command)
	if m == nil {
		return linkUsageReply
	}
	code := strings.ToUpper(m[1])
	targetID := m[2]
	password := m[3]

	if len(password) < 4 {
		return shortPasswordReply
	}

	if err := d.ledger.RelinkOwner(ctx, senderID, code, targetID, password); err != nil {
		return d.errorReply(ctx, err, code)
	}
	return linkedReply(code, targetID)
}

func (d *Dispatcher) handleAddAdmin(senderID, command string) string {
	if !d.authz.IsSuperAdmin(senderID) {
		return superAdminOnlyReply
	}

	m := addAdminRe.FindStringSubmatch(command)
	if m == nil {
		return addAdminUsageReply
	}
	adminID := m[1]

	role, ok := domain.ParseRole(m[2])
	if !ok {
		return badAdminTypeReply
	}

	if err := d.authz.AddAdmin(senderID, adminID, role); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return alreadyAdminReply
		}
		return genericErrorReply
	}
	return adminAddedReply(adminID, role)
}

func (d *Dispatcher) handleRemoveAdmin(senderID, command string) string {
	if !d.authz.IsSuperAdmin(senderID) {
		return superAdminOnlyReply
	}

	m := removeAdminRe.FindStringSubmatch(command)
	if m == nil {
		return removeAdminUsageReply
	}
	adminID := m[1]

	if err := d.authz.RemoveAdmin(senderID, adminID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return notAdminReply
		case errors.Is(err, apperrors.ErrValidation):
			return removeSuperReply
		default:
			return genericErrorReply
		}
	}
	return adminRemovedReply(adminID)
}

func (d *Dispatcher) handleSystemControl(ctx context.Context, senderID, command string) string {
	m := systemControlRe.FindStringSubmatch(command)
	if m == nil {
		return unknownTargetReply
	}
	action, target := m[1], m[2]
	on := action == "تشغيل"

	switch target {
	case "البوت":
		d.settings.SetBotEnabled(on)
	case "الانشاء":
		d.settings.SetCreateEnabled(on)
	case "التحويلات":
		d.settings.SetTransfersEnabled(on)
	case "الصيانة":
		// ايقاف الصيانة turns maintenance ON (stop-for-maintenance).
		d.settings.SetMaintenanceMode(!on)
	case "الاوقات":
		d.settings.SetWorkingHoursEnabled(on)
	default:
		return unknownTargetReply
	}

	middleware.GetLoggerFromCtx(ctx).Info("System control applied",
		slog.String("action", action),
		slog.String("target", target),
		slog.String("actor", senderID),
	)
	return systemControlReply(action, target)
}

func (d *Dispatcher) handleTotals(ctx context.Context) string {
	t, err := d.reporting.SystemTotals(ctx)
	if err != nil {
		return d.errorReply(ctx, err, "")
	}
	return totalsReply(t, d.cfg.Currency)
}

func (d *Dispatcher) handleTotalGold(ctx context.Context) string {
	t, err := d.reporting.SystemTotals(ctx)
	if err != nil {
		return d.errorReply(ctx, err, "")
	}
	return totalGoldReply(t, d.cfg.Currency)
}

func (d *Dispatcher) handleTop(ctx context.Context) string {
	accounts, err := d.reporting.TopAccounts(ctx, 10)
	if err != nil {
		return d.errorReply(ctx, err, "")
	}
	return topAccountsReply(accounts, d.cfg.Currency)
}

func (d *Dispatcher) handleBannedList(ctx context.Context) string {
	accounts, err := d.ledger.ListBanned(ctx)
	if err != nil {
		return d.errorReply(ctx, err, "")
	}
	return bannedListReply(accounts)
}

func (d *Dispatcher) handleSystemStatus(ctx context.Context) string {
	settings := d.settings.Snapshot()
	withinHours := d.settings.WithinWorkingHours(time.Now())

	totals, err := d.reporting.SystemTotals(ctx)
	if err != nil {
		totals = nil
	}

	nextCode, err := d.allocator.PeekNext(ctx)
	if err != nil {
		nextCode = "?"
	}

	return systemStatusReply(settings, withinHours, totals, nextCode, d.cfg.Currency)
}
