package commands

import (
	"fmt"
	"strings"

	"github.com/bankgold/bankgold/internal/core/domain"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Fixed reply texts. The bot speaks Arabic with emoji markers; handlers only
// ever surface these texts, never raw error strings.
const (
	permissionDeniedReply = "❌ ليس لديك الصلاحية لاستخدام هذا الأمر!"
	adminsOnlyReply       = "❌ هذا الأمر للمشرفين فقط"
	superAdminOnlyReply   = "❌ هذا الأمر للمدير الأساسي فقط"
	genericErrorReply     = "❌ حدث خطأ. الرجاء المحاولة لاحقاً."

	transfersDisabledReply = "⏸️ التحويلات متوقفة حاليًا. الرجاء المحاولة لاحقاً."
	createDisabledReply    = "⏸️ إنشاء الحسابات متوقف حاليًا. الرجاء المحاولة لاحقاً."

	contactReply = "📞 للتواصل مع المسؤول لإنشاء حساب:\nراسل: @المسؤول\nأو انتظر حتى يتم فتح إنشاء الحسابات"

	noAccountReply = "❌ ليس لديك حساب نشط.\n\n💡 يمكنك تسجيل الدخول بأي حساب من الأرشيفات باستخدام:\nتسجيل [الكود] 123456\n\n📋 الأكواد المتاحة في الأرشيفات A و B"

	loginUsageReply          = "❌ صيغة خاطئة! استخدم:\nتسجيل [الكود] [كلمة السر]\nمثال: تسجيل B700B mypassword123"
	transferUsageReply       = "❌ صيغة خاطئة! استخدم:\nتحويل [المبلغ] [كود المستلم]\nمثال: تحويل 100 B700B"
	createUsageReply         = "❌ صيغة خاطئة! استخدم:\nانشاء [الاسم الكامل]\nمثال: انشاء كيم شيريونغ"
	banUsageReply            = "❌ صيغة خاطئة! استخدم:\nحظر [الكود]\nمثال: حظر A100A"
	unbanUsageReply          = "❌ صيغة خاطئة! استخدم:\nفك حظر [الكود]\nمثال: فك حظر A100A"
	archiveUsageReply        = "❌ صيغة خاطئة! استخدم:\nارشيف [A/B][الرقم]\nمثال: ارشيف A1\nمثال: ارشيف B4"
	deductUsageReply         = "❌ صيغة خاطئة! استخدم:\nخصم [المبلغ] [الكود]\nمثال: خصم 10000 A610A"
	addUsageReply            = "❌ صيغة خاطئة! استخدم:\nاضافة [المبلغ] [الكود]\nمثال: اضافة 5000 B700B"
	balanceUsageReply        = "❌ صيغة خاطئة! استخدم:\nرصيد [كود الحساب]\nمثال: رصيد A100A\nمثال: رصيد B700B"
	linkUsageReply           = "❌ صيغة خاطئة! استخدم:\nربط [الكود] [المعرف] [كلمة السر]\nمثال: ربط B415B 24570538679239653 erwin1234"
	modifyUsageReply         = "❌ صيغة خاطئة! استخدم:\nتعديل [الكود] [الرصيد الجديد]\nمثال: تعديل B415B 2000"
	addAdminUsageReply       = "❌ صيغة خاطئة! استخدم:\nاضف مشرف [المعرف] [النوع]\nالأنواع: محاسبة، متجر، عام\nمثال: اضف مشرف 24570538679239653 محاسبة"
	removeAdminUsageReply    = "❌ صيغة خاطئة! استخدم:\nاحذف مشرف [المعرف]\nمثال: احذف مشرف 24570538679239653"
	changePasswordUsageReply = "❌ صيغة خاطئة! استخدم:\nتعديل كلمة السر [الكود] [كلمة السر الجديدة]\nمثال: تعديل كلمة السر B700B newpassword123"

	shortPasswordReply    = "❌ كلمة السر يجب أن تكون 4 أحرف على الأقل"
	wrongPasswordReply    = "❌ كلمة السر غير صحيحة!"
	wrongCodeReply        = "❌ الكود غير صحيح!"
	bannedLoginReply      = "❌ الحساب محظور!\n\n📞 للاستفسار عن سبب الحظر، تواصل مع المسؤول"
	insufficientReply     = "❌ رصيد غير كافٍ"
	recipientMissingReply = "❌ الحساب المستلم غير موجود"
	recipientBannedReply  = "❌ لا يمكن التحويل لحساب محظور"
	bannedMutationReply   = "❌ لا يمكن تعديل حساب محظور"
	negativeBalanceReply  = "❌ الرصيد لا يمكن أن يكون سالباً"
	logoutReply           = "✅ تم تسجيل الخروج بنجاح"
	alreadyAdminReply     = "❌ هذا المستخدم مشرف بالفعل!"
	notAdminReply         = "❌ هذا المستخدم ليس مشرفاً!"
	removeSuperReply      = "❌ لا يمكن حذف المدير الأساسي!"
	badAdminTypeReply     = "❌ نوع المشرف غير صحيح!\nالأنواع المتاحة: محاسبة، متجر، عام"
	noBannedReply         = "✅ لا توجد حسابات محظورة حالياً"
	unknownTargetReply    = "❌ هدف غير معروف. الأهداف المتاحة: البوت، الانشاء، التحويلات، الصيانة، الاوقات"
)

func welcomeReply() string {
	return `🏦 مرحباً في بنك GOLD

📋 الأوامر المتاحة:
• تسجيل [الكود] [كلمة السر] - تسجيل الدخول (لأي حساب في الأرشيفات)
• رصيدي - عرض رصيدك
• معرفي - عرض معرفك
• تعديل كلمة السر [الكود] [كلمة السر الجديدة] - تعديل كلمة السر
• تواصل - التواصل مع المسؤول
• مساعدة - عرض الأوامر المتاحة

🔒 النظام يدعم جميع الحسابات من الأرشيفات A و B`
}

func unknownCommandReply(command string) string {
	return fmt.Sprintf("❌ الأمر %q غير معروف!\n\n🔍 اكتب مساعدة لعرض جميع الأوامر المتاحة.\n\n💡 تلميح: تأكد من كتابة الأمر بشكل صحيح.", command)
}

func accountMissingReply(code string) string {
	return fmt.Sprintf("❌ الحساب %s غير موجود", code)
}

func myIDReply(senderID string) string {
	return fmt.Sprintf("🆔 معرفك هو: %s", senderID)
}

func statusText(status domain.AccountStatus) string {
	if status == domain.StatusActive {
		return "🟢 نشط"
	}
	return "🔴 محظور"
}

func sourceText(source domain.AccountSource) string {
	if source == domain.SourceArchive {
		return "الأرشيف"
	}
	return "قاعدة البيانات"
}

func balanceReply(acc *domain.Account, currency string) string {
	return fmt.Sprintf(`💰 رصيد الحساب:

الكود: %s
الاسم: %s
الرصيد: %s %s
الحالة: %s
المصدر: %s`,
		acc.Code, acc.Username, acc.Balance, currency, statusText(acc.Status), sourceText(acc.Source))
}

func myBalanceReply(acc *domain.Account, currency string) string {
	return fmt.Sprintf("💰 رصيدك: %s %s", acc.Balance, currency)
}

func myAccountReply(acc *domain.Account, currency string) string {
	return fmt.Sprintf(`📋 معلومات حسابك:

👤 الاسم: %s
🆔 الكود: %s
💰 الرصيد: %s %s
📅 الحالة: %s`,
		acc.Username, acc.Code, acc.Balance, currency, statusText(acc.Status))
}

func createdReply(acc *domain.Account, currency string) string {
	return fmt.Sprintf(`✅ تم إنشاء الحساب بنجاح!

📋 معلومات الحساب:
الكود: %s
الاسم: %s
الرصيد: %s %s

💳 تم إضافة البطاقة إلى الأرشيف`,
		acc.Code, acc.Username, acc.Balance, currency)
}

func transferReply(res *portssvc.TransferResult, currency string) string {
	return fmt.Sprintf("✅ تم التحويل بنجاح!\nالمبلغ: %s %s\nإلى: %s\nرصيدك الجديد: %s %s",
		res.Amount, currency, res.ToCode, res.SenderBalance, currency)
}

func loginActivatedReply(acc *domain.Account, currency string) string {
	return fmt.Sprintf("✅ تم تسجيل الدخول بنجاح!\nمرحباً بك %s\n\n💰 رصيدك: %s %s\n\n🔒 نوصي بتغيير كلمة السر باستخدام: تعديل كلمة السر %s [كلمة السر الجديدة]",
		acc.Username, acc.Balance, currency, acc.Code)
}

func loginReply(acc *domain.Account, currency string) string {
	return fmt.Sprintf("✅ تم تسجيل الدخول بنجاح!\nمرحباً بعودتك %s\n\n💰 رصيدك: %s %s",
		acc.Username, acc.Balance, currency)
}

func bannedReply(code string) string {
	return fmt.Sprintf("✅ تم حظر الحساب %s", code)
}

func unbannedReply(code string) string {
	return fmt.Sprintf("✅ تم فك حظر الحساب %s", code)
}

func deductedReply(code string, amount, newBalance decimal.Decimal, currency string) string {
	return fmt.Sprintf("✅ تم الخصم بنجاح!\nالحساب: %s\nالمبلغ: %s %s\nالرصيد الجديد: %s %s",
		code, amount, currency, newBalance, currency)
}

func addedReply(code string, amount, newBalance decimal.Decimal, currency string) string {
	return fmt.Sprintf("✅ تم الإضافة بنجاح!\nالحساب: %s\nالمبلغ: +%s %s\nالرصيد الجديد: %s %s",
		code, amount, currency, newBalance, currency)
}

func modifiedReply(code string, newBalance, prevBalance decimal.Decimal, currency string) string {
	return fmt.Sprintf("✅ تم التعديل بنجاح!\nالحساب: %s\nالرصيد الجديد: %s %s\nالرصيد السابق: %s %s",
		code, newBalance, currency, prevBalance, currency)
}

func linkedReply(code, targetID string) string {
	return fmt.Sprintf("✅ تم ربط الحساب بنجاح!\nالكود: %s\nالمعرف: %s\n\n⚠️ تم إلغاء الربط السابق لهذا الكود", code, targetID)
}

func passwordChangedReply(code, newPassword string) string {
	return fmt.Sprintf("✅ تم تعديل كلمة السر بنجاح!\nالحساب: %s\nكلمة السر الجديدة: %s", code, newPassword)
}

func adminAddedReply(id string, role domain.Role) string {
	return fmt.Sprintf("✅ تم إضافة المشرف بنجاح!\nالمعرف: %s\nالنوع: %s\n\n⚠️ يمكن للمشرف استخدام الأوامر الخاصة بنوعه فقط", id, role.DisplayName())
}

func adminRemovedReply(id string) string {
	return fmt.Sprintf("✅ تم حذف المشرف بنجاح!\nالمعرف: %s", id)
}

func bannedListReply(accounts []domain.Account) string {
	if len(accounts) == 0 {
		return noBannedReply
	}
	var b strings.Builder
	b.WriteString("🚫 الحسابات المحظورة:\n\n")
	for _, acc := range accounts {
		fmt.Fprintf(&b, "• %s - %s\n", acc.Code, acc.Username)
	}
	fmt.Fprintf(&b, "\n---\nإجمالي المحظورين: %d حساب", len(accounts))
	return b.String()
}

func totalsReply(t *domain.SystemTotals, currency string) string {
	avg := decimal.Zero
	if t.AccountCount > 0 {
		avg = t.TotalGold.Div(decimal.NewFromInt(int64(t.AccountCount))).Round(0)
	}
	return fmt.Sprintf(`💰 إحصائيات النظام:

• إجمالي الغولد: %s %s
• عدد الحسابات: %d
• الحسابات النشطة: %d
• متوسط الرصيد: %s %s`,
		t.TotalGold, currency, t.AccountCount, t.ActiveCount, avg, currency)
}

func totalGoldReply(t *domain.SystemTotals, currency string) string {
	avg := decimal.Zero
	if t.AccountCount > 0 {
		avg = t.TotalGold.Div(decimal.NewFromInt(int64(t.AccountCount))).Round(0)
	}
	return fmt.Sprintf(`💰 إجمالي الغولد في النظام:

📊 الإحصائيات:
• إجمالي الغولد: %s %s
• عدد الحسابات: %d
• متوسط الرصيد: %s %s

📁 المصادر:
• الأرشيفات: %d حساب
• قاعدة البيانات: %d حساب
• الحسابات النشطة: %d حساب`,
		t.TotalGold, currency, t.AccountCount, avg, currency, t.ArchiveCount, t.LiveCount, t.ActiveCount)
}

func topAccountsReply(accounts []domain.Account, currency string) string {
	if len(accounts) == 0 {
		return "📊 لا توجد حسابات نشطة لعرضها"
	}
	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	b.WriteString("🏆 أعلى 10 حسابات حسب الرصيد:\n\n")
	total := decimal.Zero
	for i, acc := range accounts {
		medal := "🔸"
		if i < len(medals) {
			medal = medals[i]
		}
		source := ""
		if acc.Source == domain.SourceArchive {
			source = " (الأرشيف)"
		}
		fmt.Fprintf(&b, "%s %s - %s%s\n   💰 %s %s\n\n", medal, acc.Code, acc.Username, source, acc.Balance, currency)
		total = total.Add(acc.Balance)
	}
	fmt.Fprintf(&b, "---\nإجمالي أعلى 10: %s %s", total, currency)
	return b.String()
}

func archivePageReply(view *portssvc.ArchivePageView, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📁 %s\n", view.Page.Name)
	fmt.Fprintf(&b, "📍 من %s إلى %s\n\n", view.Page.StartCode, view.Page.EndCode)

	for _, acc := range view.Accounts {
		fmt.Fprintf(&b, "%s %s\n%s %s\n\n", acc.Code, acc.Username, acc.Balance, currency)
	}

	if view.TotalPages > 1 {
		fmt.Fprintf(&b, "📄 الصفحة %d من %d — اكتب: ارشيف %s %d\n\n",
			view.PageIndex, view.TotalPages, view.Page.Ref(), view.PageIndex+1)
	}

	avg := decimal.Zero
	if view.TotalAccounts > 0 {
		avg = view.TotalGold.Div(decimal.NewFromInt(int64(view.TotalAccounts))).Round(0)
	}
	b.WriteString("--- الإحصاءات ---\n")
	fmt.Fprintf(&b, "• عدد الحسابات: %d\n", view.TotalAccounts)
	fmt.Fprintf(&b, "• إجمالي الغولد: %s %s\n", view.TotalGold, currency)
	fmt.Fprintf(&b, "• متوسط الرصيد: %s %s", avg, currency)
	return b.String()
}

func archiveMissingReply(series string, number int, pages []domain.ArchivePage) string {
	var list strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&list, "• %s - %s\n", p.Ref(), p.Name)
	}
	if list.Len() == 0 {
		list.WriteString("لا توجد أرشيفات")
	}
	return fmt.Sprintf("❌ الأرشيف %s%d غير موجود\n\n📂 الأرشيفات المتاحة في سلسلة %s:\n%s", series, number, series, strings.TrimRight(list.String(), "\n"))
}

func systemControlReply(action, target string) string {
	if target == "الصيانة" {
		if action == "ايقاف" {
			return "✅ تم تفعيل وضع الصيانة"
		}
		return "✅ تم إلغاء وضع الصيانة"
	}
	names := map[string]string{
		"البوت":     "البوت",
		"الانشاء":   "إنشاء الحسابات",
		"التحويلات": "التحويلات",
		"الاوقات":   "نظام أوقات العمل",
	}
	return fmt.Sprintf("✅ تم %s %s بنجاح", action, names[target])
}

func onOff(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

func systemStatusReply(settings domain.SystemSettings, withinHours bool, t *domain.SystemTotals, nextCode, currency string) string {
	var b strings.Builder
	b.WriteString("🏦 حالة النظام الحالية\n\n")
	b.WriteString("🔧 إعدادات النظام:\n")
	fmt.Fprintf(&b, "• البوت: %s\n", onOff(settings.BotEnabled, "🟢 نشط", "🔴 متوقف"))
	fmt.Fprintf(&b, "• إنشاء الحسابات: %s\n", onOff(settings.CreateEnabled, "🟢 مفعل", "🔴 متوقف"))
	fmt.Fprintf(&b, "• التحويلات: %s\n", onOff(settings.TransfersEnabled, "🟢 مفعلة", "🔴 متوقفة"))
	fmt.Fprintf(&b, "• وضع الصيانة: %s\n", onOff(settings.MaintenanceMode, "🟡 مفعل", "🔴 غير مفعل"))
	fmt.Fprintf(&b, "• أوقات العمل: %s\n\n", onOff(settings.WorkingHours.Enabled, "🟢 مفعلة", "🔴 غير مفعلة"))

	if settings.WorkingHours.Enabled {
		b.WriteString("⏰ أوقات العمل:\n")
		fmt.Fprintf(&b, "• من: %s\n", settings.WorkingHours.StartTime)
		fmt.Fprintf(&b, "• إلى: %s\n", settings.WorkingHours.EndTime)
		fmt.Fprintf(&b, "• الحالة الآن: %s\n\n", onOff(withinHours, "🟢 ضمن أوقات العمل", "🔴 خارج أوقات العمل"))
	}

	if t == nil {
		b.WriteString("❌ خطأ في تحميل الإحصائيات")
		return b.String()
	}

	b.WriteString("📊 الإحصائيات:\n")
	fmt.Fprintf(&b, "• إجمالي الحسابات: %d\n", t.AccountCount)
	fmt.Fprintf(&b, "• الحسابات النشطة: %d\n", t.ActiveCount)
	fmt.Fprintf(&b, "• إجمالي الغولد: %s %s\n", t.TotalGold, currency)
	fmt.Fprintf(&b, "• التالي: %s", nextCode)
	return b.String()
}
