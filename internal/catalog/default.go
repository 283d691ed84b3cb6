package catalog

import "fmt"

// Default returns the production training track: the eight rover courses and
// their exams. Durations and pass scores mirror what course leaders run on
// paper; a failed attempt locks the exam for two hours.
func Default() *Catalog {
	return New(defaultCourses(), defaultExams())
}

func defaultCourses() []Course {
	titles := []string{
		"دورة تدريب الجوالة الجدد",
		"دورة رواد الرهوط",
		"دورة القادة المعلمين",
		"دورة إعداد مساعد قائد الفريق",
		"دورة تأهيل قادة الفرق والمكاتب",
		"دورة إعداد وتنفيذ البرامج الكشفية",
		"دورة تدريب القادة العموم",
		"دورة قادة المجموعات الكشفية",
	}
	contentURLs := []string{
		"https://drive.google.com/file/d/1KjzAiJ403DprvqFuTwjlJZwTqpZ9e2pf/preview",
		"https://drive.google.com/file/d/1ndlFTZcBQypQzJi2JdIT0PE-O9n1UbMF/preview",
		"https://drive.google.com/file/d/1KwzEP2S_xI2TC0iN0l018bzTzlsTSTeR/preview",
		"https://drive.google.com/file/d/103h_rahd79TRBBjoer-IIbNJv3xfYZnr/preview",
		"https://drive.google.com/file/d/1YFgt7j88nFjh--njgAYFVTBRXQIvwvT4/preview",
		"https://drive.google.com/file/d/1ieo86RlTo_CdBdZ2vZ_G3CIHl2cyiI0i/preview",
		"https://drive.google.com/file/d/1QO7OTvYwsTr3jzNuz4rOexJ-wKcBNjVv/preview",
		"https://drive.google.com/file/d/1ihfu0YXAwYxCGeDfwfoRm6h-AesQ-8Dn/preview",
	}

	courses := make([]Course, 0, len(titles))
	for i, title := range titles {
		id := i + 1
		courses = append(courses, Course{
			ID:              id,
			Title:           title,
			ContentURL:      contentURLs[i],
			CertificatePath: fmt.Sprintf("/certificates/%d.jpg", id),
		})
	}
	return courses
}

func defaultExams() map[int]*ExamDefinition {
	exams := make(map[int]*ExamDefinition, 8)
	for id, questions := range examQuestions {
		exams[id] = &ExamDefinition{
			CourseID:        id,
			Title:           fmt.Sprintf("امتحان %s", courseTitle(id)),
			Questions:       questions,
			DurationMinutes: 30,
			PassScore:       passScoreFor(len(questions)),
			CooldownMinutes: 120,
		}
	}
	return exams
}

func courseTitle(id int) string {
	for _, c := range defaultCourses() {
		if c.ID == id {
			return c.Title
		}
	}
	return ""
}

// passScoreFor keeps the pass bar at 60% of the question count, rounded up.
func passScoreFor(questionCount int) int {
	return (questionCount*3 + 4) / 5
}

var examQuestions = map[int][]Question{
	1: {
		{
			Text:         "ما هو الوعد الكشفي؟",
			Options:      []string{"التزام شخصي أمام الله والوطن والآخرين", "نشيد يردد في بداية الاجتماع", "قائمة بقوانين الفريق", "تحية خاصة بالقادة"},
			CorrectIndex: 0,
		},
		{
			Text:         "كم عدد بنود القانون الكشفي؟",
			Options:      []string{"خمسة", "سبعة", "عشرة", "اثنا عشر"},
			CorrectIndex: 2,
		},
		{
			Text:         "ما المرحلة العمرية لقسم الجوالة؟",
			Options:      []string{"من 7 إلى 11 سنة", "من 11 إلى 14 سنة", "من 14 إلى 17 سنة", "من 17 إلى 23 سنة"},
			CorrectIndex: 3,
		},
		{
			Text:         "ما شعار الجوالة؟",
			Options:      []string{"كن مستعداً", "الخدمة العامة", "افعل خيراً", "العمل الجاد"},
			CorrectIndex: 1,
		},
		{
			Text:         "من هو مؤسس الحركة الكشفية؟",
			Options:      []string{"روبرت بادن باول", "هنري دونان", "بيير دي كوبرتان", "توماس إديسون"},
			CorrectIndex: 0,
		},
	},
	2: {
		{
			Text:         "ما هو الرهط في التشكيلات الكشفية؟",
			Options:      []string{"مجموعة صغيرة داخل العشيرة", "اسم آخر للمخيم", "اجتماع القادة الشهري", "درجة من درجات التقدم"},
			CorrectIndex: 0,
		},
		{
			Text:         "ما العدد المثالي لأعضاء الرهط؟",
			Options:      []string{"من 2 إلى 4", "من 6 إلى 8", "من 12 إلى 15", "أكثر من 20"},
			CorrectIndex: 1,
		},
		{
			Text:         "من يختار رائد الرهط؟",
			Options:      []string{"قائد المجموعة فقط", "أعضاء الرهط", "أصغر عضو في العشيرة", "مجلس الآباء"},
			CorrectIndex: 1,
		},
		{
			Text:         "ما أهم صفة في رائد الرهط؟",
			Options:      []string{"القوة البدنية", "تحمل المسؤولية والقدوة", "حفظ الأناشيد", "طول مدة الانتساب"},
			CorrectIndex: 1,
		},
		{
			Text:         "ما دور مجلس شرف العشيرة؟",
			Options:      []string{"تنظيم الرحلات فقط", "محاسبة الأعضاء وتقييم السلوك واتخاذ القرارات", "جمع الاشتراكات", "اختيار ألوان المناديل"},
			CorrectIndex: 1,
		},
	},
	3: {
		{
			Text:         "ما الهدف الأساسي من دورة القادة المعلمين؟",
			Options:      []string{"إعداد قادة قادرين على تدريب الآخرين", "تعليم المهارات اليدوية", "تنظيم المسابقات الرياضية", "إدارة الشؤون المالية"},
			CorrectIndex: 0,
		},
		{
			Text:         "أي أسلوب تدريبي يناسب المهارات العملية؟",
			Options:      []string{"المحاضرة النظرية", "العرض والتطبيق العملي", "القراءة الذاتية", "الامتحان المباشر"},
			CorrectIndex: 1,
		},
		{
			Text:         "ما أول خطوة في إعداد جلسة تدريبية؟",
			Options:      []string{"تجهيز القاعة", "تحديد الأهداف التعليمية", "طباعة الشهادات", "اختيار الأناشيد"},
			CorrectIndex: 1,
		},
		{
			Text:         "كيف يقيس المدرب نجاح الجلسة؟",
			Options:      []string{"بعدد الحضور فقط", "بمدى تحقق الأهداف لدى المتدربين", "بطول مدة الجلسة", "بعدد الوسائل المستخدمة"},
			CorrectIndex: 1,
		},
		{
			Text:         "ما المقصود بالتغذية الراجعة؟",
			Options:      []string{"وجبة نهاية التدريب", "ملاحظات تقييمية تعاد للمتدرب لتحسين أدائه", "تقرير مالي", "استراحة بين الجلسات"},
			CorrectIndex: 1,
		},
	},
	4: {
		{
			Text:         "ما الدور الأساسي لمساعد قائد الفريق؟",
			Options:      []string{"مناوبة القيادة ومساندة القائد في التخطيط والتنفيذ", "حراسة المخيم", "قيادة الأناشيد", "تمثيل الفريق إعلامياً"},
			CorrectIndex: 0,
		},
		{
			Text:         "متى يتولى المساعد قيادة الفريق؟",
			Options:      []string{"لا يتولاها أبداً", "عند غياب القائد أو بتكليف منه", "في المخيمات فقط", "عند موافقة الأهالي"},
			CorrectIndex: 1,
		},
		{
			Text:         "ما أفضل طريقة لتوزيع المهام داخل الفريق؟",
			Options:      []string{"حسب القدرات والميول مع التدوير", "بالقرعة دائماً", "حسب العمر فقط", "يقوم القائد بكل المهام"},
			CorrectIndex: 0,
		},
		{
			Text:         "كيف يتعامل المساعد مع خلاف بين عضوين؟",
			Options:      []string{"يتجاهله", "يستمع للطرفين ويسعى لحل عادل", "يعاقب الاثنين فوراً", "يرفعه للأهالي"},
			CorrectIndex: 1,
		},
		{
			Text:         "ما الذي يميز الاجتماع الناجح للفريق؟",
			Options:      []string{"طول مدته", "وجود برنامج معد مسبقاً وأهداف واضحة", "كثرة الحاضرين", "غياب القائد"},
			CorrectIndex: 1,
		},
	},
	5: {
		{
			Text:         "ما أول مسؤوليات قائد الفريق الجديد؟",
			Options:      []string{"معرفة أعضائه وبناء الثقة معهم", "شراء التجهيزات", "تغيير شعار الفريق", "تنظيم رحلة طويلة"},
			CorrectIndex: 0,
		},
		{
			Text:         "ما وظيفة مكتب العشيرة؟",
			Options:      []string{"تنسيق العمل الإداري والبرامج بين الرهوط", "حفظ الأمتعة", "استقبال الزوار", "إعداد الطعام"},
			CorrectIndex: 0,
		},
		{
			Text:         "كيف توضع خطة الفريق السنوية؟",
			Options:      []string{"ينفرد بها القائد", "بمشاركة الأعضاء وفق احتياجاتهم وأهداف المرحلة", "تنسخ من فريق آخر", "لا حاجة لخطة"},
			CorrectIndex: 1,
		},
		{
			Text:         "ما أهمية السجلات في إدارة الفريق؟",
			Options:      []string{"توثيق النشاطات ومتابعة تقدم الأعضاء", "لا أهمية لها", "عرضها في المناسبات فقط", "إشغال أمين السر"},
			CorrectIndex: 0,
		},
		{
			Text:         "ما أنسب أسلوب لاتخاذ القرارات داخل الفريق؟",
			Options:      []string{"التصويت والشورى مع حسم القائد عند التعادل", "قرارات فردية دائماً", "القرعة", "تأجيل كل القرارات"},
			CorrectIndex: 0,
		},
	},
	6: {
		{
			Text:         "ما أول خطوات إعداد برنامج كشفي؟",
			Options:      []string{"حجز المكان", "إعلان البرنامج", "تحديد الأهداف واحتياجات المشاركين", "توزيع الشارات"},
			CorrectIndex: 2,
		},
		{
			Text:         "ما العناصر الأساسية لأي نشاط كشفي ناجح؟",
			Options:      []string{"هدف وبرنامج وقيادة ووسائل وتقييم", "طعام ومواصلات فقط", "أناشيد وألعاب فقط", "ميزانية كبيرة"},
			CorrectIndex: 0,
		},
		{
			Text:         "لماذا يوضع برنامج احتياطي؟",
			Options:      []string{"لإطالة النشاط", "لمواجهة الظروف الطارئة كتقلب الطقس", "لإرضاء الضيوف", "لا داعي له"},
			CorrectIndex: 1,
		},
		{
			Text:         "متى يجرى تقييم البرنامج؟",
			Options:      []string{"قبل البدء فقط", "لا يجرى تقييم", "بعد سنة", "أثناء التنفيذ وبعده"},
			CorrectIndex: 3,
		},
		{
			Text:         "ما المقصود بالبرنامج المتدرج؟",
			Options:      []string{"برنامج على شكل درج", "برنامج يراعي تسلسل الصعوبة ومستوى المشاركين", "برنامج للمتقدمين فقط", "برنامج بلا ترتيب"},
			CorrectIndex: 1,
		},
	},
	7: {
		{
			Text:         "ما نطاق مسؤولية القائد العام؟",
			Options:      []string{"قيادة فريق واحد", "الإشراف على أقسام المجموعة كافة وتمثيلها", "الإشراف على المخزن", "تدريب الأشبال فقط"},
			CorrectIndex: 1,
		},
		{
			Text:         "كيف يتابع القائد العام أداء القادة؟",
			Options:      []string{"بالسؤال العابر", "لا يتابعهم", "عبر الأهالي فقط", "بالاجتماعات الدورية والزيارات الميدانية والتقارير"},
			CorrectIndex: 3,
		},
		{
			Text:         "ما أسلوب القيادة الأنسب في المواقف الطارئة؟",
			Options:      []string{"الحزم وسرعة اتخاذ القرار", "التشاور المطول", "التفويض الكامل", "الانسحاب"},
			CorrectIndex: 0,
		},
		{
			Text:         "ما واجب القائد العام تجاه إعداد الصف الثاني؟",
			Options:      []string{"الاحتفاظ بكل الصلاحيات", "منع الترقيات", "اكتشاف القيادات الواعدة وتأهيلها للتكليف", "اختيار أقاربه"},
			CorrectIndex: 2,
		},
		{
			Text:         "كيف يبنى التواصل مع الجهات الداعمة؟",
			Options:      []string{"بالمصادفة", "بخطة علاقات عامة واضحة وتقارير منتظمة", "لا حاجة للتواصل", "عبر الأعضاء الجدد"},
			CorrectIndex: 1,
		},
	},
	8: {
		{
			Text:         "ما مكونات المجموعة الكشفية الكاملة؟",
			Options:      []string{"فريق واحد فقط", "القادة دون الأعضاء", "الأهالي فقط", "أقسام المراحل العمرية وقيادتها ومجلسها"},
			CorrectIndex: 3,
		},
		{
			Text:         "ما وظيفة مجلس المجموعة؟",
			Options:      []string{"تنظيم حفلات فقط", "رسم السياسة العامة ومتابعة الخطط والميزانية", "لا وظيفة له", "تدريب الجوالة"},
			CorrectIndex: 1,
		},
		{
			Text:         "كيف تدار الموارد المالية للمجموعة؟",
			Options:      []string{"بميزانية معتمدة وسجلات موثقة وتدقيق دوري", "نقداً دون قيود", "يحتفظ بها القائد شخصياً", "لا تحتاج إدارة"},
			CorrectIndex: 0,
		},
		{
			Text:         "ما أساس التخطيط الاستراتيجي للمجموعة؟",
			Options:      []string{"تقليد المجموعات الأخرى", "قرارات ارتجالية", "رؤية ورسالة وأهداف قابلة للقياس", "تمنيات عامة"},
			CorrectIndex: 2,
		},
		{
			Text:         "كيف تقيم المجموعة نجاح عامها الكشفي؟",
			Options:      []string{"بعدد الصور الملتقطة", "بمؤشرات النمو والأنشطة المنفذة ورضا الأعضاء", "برأي القائد وحده", "لا تحتاج تقييماً"},
			CorrectIndex: 1,
		},
	},
}
