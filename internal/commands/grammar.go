package commands

import "regexp"

// Command shapes. Codes are matched loosely here and canonicalized by the
// ledger; amounts accept an optional trailing "g" unit suffix.
var (
	loginRe          = regexp.MustCompile(`تسجيل\s+(\w+)\s+(\S+)`)
	transferRe       = regexp.MustCompile(`تحويل\s+(\d+)[gG]?\s+لـ?\s*(\w+)`)
	banRe            = regexp.MustCompile(`حظر\s+(\w+)`)
	unbanRe          = regexp.MustCompile(`فك حظر\s+(\w+)`)
	archiveRe        = regexp.MustCompile(`ارشيف\s+([A-Za-z])\s*(\d+)(?:\s+(\d+))?`)
	deductRe         = regexp.MustCompile(`خصم\s+(\d+)[gG]?\s+(\w+)`)
	addRe            = regexp.MustCompile(`اضافة\s+(\d+)[gG]?\s+(\w+)`)
	balanceRe        = regexp.MustCompile(`رصيد\s+(\w+)`)
	linkRe           = regexp.MustCompile(`ربط\s+(\w+)\s+(\d+)\s+(\S+)`)
	modifyRe         = regexp.MustCompile(`تعديل\s+(\w+)\s+(\d+)`)
	addAdminRe       = regexp.MustCompile(`اضف مشرف\s+(\d+)\s+(\S+)`)
	removeAdminRe    = regexp.MustCompile(`احذف مشرف\s+(\d+)`)
	changePasswordRe = regexp.MustCompile(`تعديل كلمة السر\s+(\S+)\s+(\S+)`)
	systemControlRe  = regexp.MustCompile(`^(ايقاف|تشغيل)\s+(\S+)`)
)
