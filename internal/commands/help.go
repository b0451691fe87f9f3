package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bankgold/bankgold/internal/core/domain"
)

// helpReply builds the command listing for the caller's privilege level.
// Admins only see the shapes their role can actually use.
func (d *Dispatcher) helpReply(ctx context.Context, senderID string) string {
	isAdmin := d.authz.IsAdmin(senderID)
	isSuper := d.authz.IsSuperAdmin(senderID)

	var b strings.Builder
	b.WriteString("🏦 أوامر بنك GOLD - المساعدة\n\n")
	b.WriteString("💡 النظام يدعم جميع الحسابات من الأرشيفات A و B\n")
	fmt.Fprintf(&b, "🔐 كلمة السر الافتراضية للأرشيفات: %s\n\n", d.cfg.ArchiveDefaultPassword)

	if !isAdmin {
		b.WriteString(`👤 أوامر المستخدم:
• تسجيل [الكود] [كلمة السر] - تسجيل الدخول (لحسابات الأرشيفات)
• رصيدي - عرض رصيدك
• حالتي - عرض معلومات حسابك
• تحويل [المبلغ] [الكود] - تحويل غولد
• تعديل كلمة السر [الكود] [كلمة السر الجديدة] - تعديل كلمة سر حسابك
• معرفي - عرض معرفك
• حالة النظام - عرض حالة النظام
• تسجيل خروج - تسجيل الخروج
• تواصل - التواصل مع المسؤول
• مساعدة - عرض هذه الرسالة
`)
		return b.String()
	}

	b.WriteString(`⚡ أوامر التحكم بالنظام:
• تشغيل البوت / ايقاف البوت - تشغيل/إيقاف البوت
• تشغيل الانشاء / ايقاف الانشاء - السماح/منع إنشاء حسابات
• تشغيل التحويلات / ايقاف التحويلات - السماح/منع التحويلات
• ايقاف الصيانة / تشغيل الصيانة - تفعيل/إلغاء وضع الصيانة
• تشغيل الاوقات / ايقاف الاوقات - تفعيل/إلغاء أوقات العمل
• حالة النظام - عرض حالة النظام المفصلة

`)

	role, _ := d.authz.RoleOf(senderID)
	fmt.Fprintf(&b, "🔧 الأوامر المتاحة لك (%s):\n", role.DisplayName())

	type permLine struct {
		perm domain.Permission
		line string
	}
	lines := []permLine{
		{domain.PermCreate, "• انشاء [الاسم] - إنشاء حساب جديد"},
		{domain.PermLink, "• ربط [الكود] [المعرف] [كلمة السر] - ربط حساب"},
		{domain.PermTransfer, "• تحويل [المبلغ] [الكود] - تحويل غولد"},
		{domain.PermBalance, "• رصيد [الكود] - استعلام عن رصيد حساب"},
		{domain.PermArchive, "• ارشيف [A/B][رقم] - عرض الأرشيفات"},
		{domain.PermDeduct, "• خصم [المبلغ] [الكود] - خصم غولد"},
		{domain.PermAdd, "• اضافة [المبلغ] [الكود] - إضافة غولد"},
		{domain.PermSetBalance, "• تعديل [الكود] [الرصيد] - تعديل الرصيد مباشرة"},
		{domain.PermBan, "• حظر [الكود] - حظر حساب"},
		{domain.PermUnban, "• فك حظر [الكود] - فك حظر حساب"},
		{domain.PermListBanned, "• محظورين - عرض قائمة المحظورين"},
	}
	for _, l := range lines {
		if d.authz.HasPermission(senderID, l.perm) {
			b.WriteString(l.line)
			b.WriteByte('\n')
		}
	}
	b.WriteString("• تعديل كلمة السر [الكود] [كلمة السر] - تعديل كلمة السر\n\n")

	if isSuper {
		b.WriteString(`👑 أوامر المدير الأساسي:
• مجموع - إجمالي الغولد
• توب - أعلى 10 حسابات
• اجمالي / الكل - إجمالي الغولد في الأرشيفات
• اضف مشرف [المعرف] [النوع] - إضافة مشرف جديد
• احذف مشرف [المعرف] - حذف مشرف

`)
	}

	totals, err := d.reporting.SystemTotals(ctx)
	if err != nil {
		b.WriteString("📊 معلومات النظام: ❌ خطأ في تحميل الإحصائيات")
		return b.String()
	}
	nextCode, err := d.allocator.PeekNext(ctx)
	if err != nil {
		nextCode = "?"
	}

	b.WriteString("📊 معلومات النظام:\n")
	fmt.Fprintf(&b, "• الرصيد الابتدائي: %s %s\n", d.cfg.InitialBalance, d.cfg.Currency)
	fmt.Fprintf(&b, "• إجمالي الحسابات: %d\n", totals.AccountCount)
	fmt.Fprintf(&b, "• إجمالي الغولد: %s %s\n", totals.TotalGold, d.cfg.Currency)
	fmt.Fprintf(&b, "• التالي: %s", nextCode)
	return b.String()
}
