package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/bankgold/bankgold/internal/apperrors"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
	"github.com/bankgold/bankgold/internal/core/services"
	"github.com/bankgold/bankgold/internal/middleware"
	"github.com/bankgold/bankgold/internal/platform/config"
	"github.com/bankgold/bankgold/internal/utils"
)

// commandTimeout bounds the storage work of a single command. A timed-out
// command answers with the generic failure text; transfers never commit
// partially because the transaction dies with the context.
const commandTimeout = 5 * time.Second

// Dispatcher routes incoming chat messages to their handlers. Admin callers
// get the admin grammar; everyone else passes the system gates first, then
// the public grammar. First match in declaration order wins, so prefixes that
// contain other prefixes (فك حظر before حظر, تعديل كلمة السر before تعديل,
// تسجيل خروج before تسجيل) are checked longest first.
type Dispatcher struct {
	ledger    portssvc.LedgerSvc
	archive   portssvc.ArchiveSvc
	allocator portssvc.AllocatorSvc
	authz     portssvc.AuthzSvc
	sessions  portssvc.SessionSvc
	settings  portssvc.SettingsSvc
	reporting portssvc.ReportingSvc
	cfg       *config.Config
	analytics *utils.PosthogClientWrapper
}

// NewDispatcher creates the command dispatcher over the service container.
func NewDispatcher(svcs *services.Container, cfg *config.Config, analytics *utils.PosthogClientWrapper) *Dispatcher {
	return &Dispatcher{
		ledger:    svcs.Ledger,
		archive:   svcs.Archive,
		allocator: svcs.Allocator,
		authz:     svcs.Authz,
		sessions:  svcs.Sessions,
		settings:  svcs.Settings,
		reporting: svcs.Reporting,
		cfg:       cfg,
		analytics: analytics,
	}
}

// Handle processes one inbound message and returns the reply text.
// It always returns something to send.
func (d *Dispatcher) Handle(ctx context.Context, senderID, message string) string {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	command := strings.TrimSpace(message)
	if command == "" {
		return welcomeReply()
	}

	d.track(senderID, command)

	// Admins skip the gates so the system stays operable while closed.
	if d.authz.IsAdmin(senderID) {
		return d.handleAdmin(ctx, senderID, command)
	}

	if ok, msg := d.settings.Gate(time.Now(), false); !ok {
		return msg
	}

	return d.handlePublic(ctx, senderID, command)
}

// track enqueues a command analytics event. The first word is enough to
// classify the command without capturing codes or passwords.
func (d *Dispatcher) track(senderID, command string) {
	if d.analytics == nil || !d.analytics.IsInitialized() {
		return
	}
	keyword := command
	if i := strings.IndexByte(command, ' '); i > 0 {
		keyword = command[:i]
	}
	d.analytics.Enqueue(senderID, "command_received", map[string]any{"command": keyword})
}

// errorReply maps a service error onto the user-facing text for it. Anything
// unrecognized is logged and answered with the generic failure text.
func (d *Dispatcher) errorReply(ctx context.Context, err error, code string) string {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return accountMissingReply(code)
	case errors.Is(err, apperrors.ErrAccountBanned):
		return bannedMutationReply
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return insufficientReply
	case errors.Is(err, apperrors.ErrForbidden):
		return permissionDeniedReply
	case errors.Is(err, apperrors.ErrValidation):
		return genericErrorReply
	default:
		middleware.GetLoggerFromCtx(ctx).Error("Command failed",
			slog.String("error", err.Error()),
			slog.String("code", code),
		)
		return genericErrorReply
	}
}
