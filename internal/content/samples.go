package content

import "github.com/SAP-F-2025/widget-service/internal/models"

// DefaultWidgetID identifies a widget embedded without an explicit id.
const DefaultWidgetID = "000000000000000000000000"

const (
	DefaultMarkPrompt  = "اين يقع المفعول به في قوله تعالى:"
	DefaultMatchPrompt = "طابق الكلمات"
	DefaultSortPrompt  = "رتّب الجمل بالترتيب الصحيح"
	DefaultSubject     = "Grade 12 Physics"
	DefaultLesson      = "Capacitors (الفصل الأول - المتسعات)"
)

// Sample returns a fresh copy of the built-in content for kind, or nil for
// an unknown kind.
func Sample(kind models.WidgetType) interface{} {
	switch kind {
	case models.WidgetDrag:
		return SampleDrag()
	case models.WidgetMark:
		return SampleMark()
	case models.WidgetMatch:
		return SampleMatch()
	case models.WidgetSort:
		return SampleSort()
	case models.WidgetSpell:
		return SampleSpell()
	case models.WidgetQuiz:
		return SampleQuiz()
	default:
		return nil
	}
}

func SampleDrag() *models.DragContent {
	one, zero := 1.0, 0.0
	return &models.DragContent{
		Image: "https://assets.corrsy.com/ankido/images/1770056334055-background-697aa78e05f6c.png",
		ImageFit: &models.ImageFit{
			X:        92.09621993127149,
			Y:        0,
			Width:    415.807560137457,
			Height:   600,
			ScaleX:   &one,
			ScaleY:   &one,
			Rotation: &zero,
		},
		Dropzones: []models.Dropzone{
			{
				ID:     "91064b19-1951-48f2-a9e8-edb32023d855",
				X:      236.96078431372538,
				Y:      383.2941176470588,
				Width:  96.07843137254916,
				Height: 29.41176470588241,
				Label:  "1",
			},
			{
				ID:     "c43f4f6d-60e2-409b-965b-304de34d7cab",
				X:      372.9901960784314,
				Y:      355.33333333333337,
				Width:  99.01960784313721,
				Height: 33.33333333333336,
				Label:  "2",
			},
			{
				ID:     "7e3f3afd-4aba-483b-abc2-ddd6a4073546",
				X:      222.9313725490196,
				Y:      302.3333333333333,
				Width:  93.13725490196076,
				Height: 33.33333333333344,
				Label:  "3",
			},
		},
		Draggables: []models.DraggableItem{
			{
				ID:                "5b23d17e-20e9-48f5-869f-7845d73c8cfe",
				Text:              "عنصر 1",
				Width:             100,
				Height:            40,
				InitialX:          91,
				InitialY:          94,
				CorrectDropzoneID: "91064b19-1951-48f2-a9e8-edb32023d855",
			},
			{
				ID:                "61d13155-6d9c-4c0e-a4bc-3df6ae71fe0d",
				Text:              "عنصر 2",
				Width:             100,
				Height:            40,
				InitialX:          208,
				InitialY:          93,
				CorrectDropzoneID: "c43f4f6d-60e2-409b-965b-304de34d7cab",
			},
			{
				ID:                "f1cd2e6c-753d-4739-ae61-2dd47f32912e",
				Text:              "عنصر 3",
				Width:             100,
				Height:            40,
				InitialX:          323,
				InitialY:          92,
				CorrectDropzoneID: "7e3f3afd-4aba-483b-abc2-ddd6a4073546",
			},
		},
	}
}

func SampleMark() *models.MarkContent {
	return &models.MarkContent{
		Prompt:    DefaultMarkPrompt,
		Paragraph: "{إِنَّمَا يَخْشَى *اللَّهَ* مِنْ عِبَادِهِ الْعُلَمَاءُ}",
	}
}

func SampleMatch() *models.MatchContent {
	return &models.MatchContent{
		Prompt: DefaultMatchPrompt,
		Pairs: []models.MatchPair{
			{Left: "apple", Right: "تفاحة"},
			{Left: "book", Right: "كتاب"},
			{Left: "sun", Right: "شمس"},
			{Left: "water", Right: "ماء"},
			{Left: "house", Right: "بيت"},
		},
	}
}

func SampleSort() *models.SortContent {
	return &models.SortContent{
		Prompt: DefaultSortPrompt,
		Sentences: []string{
			"استيقظ أحمد من النوم مبكرًا",
			"تناول وجبة الإفطار مع عائلته",
			"ذهب إلى المدرسة بالحافلة",
			"حضر جميع الدروس باهتمام",
			"عاد إلى المنزل بعد انتهاء اليوم الدراسي",
		},
	}
}

func SampleSpell() *models.SpellContent {
	return &models.SpellContent{Sentence: "Welcome to Corrsy"}
}

func SampleQuiz() *models.QuizContent {
	return &models.QuizContent{
		Question: "ما هي الوظيفة الأساسية للمتسعة؟",
		Answer:   "الوظيفة الأساسية للمتسعة هي تخزين الشحنات الكهربائية والطاقة الكهربائية داخلها.",
		Subject:  DefaultSubject,
		Lesson:   DefaultLesson,
	}
}
