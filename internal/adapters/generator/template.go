package generator

import (
	"fmt"
	"math/rand"
	"time"
)

var primaryHashtags = []string{
	"#TechTwitter", "#CodeNewbie", "#100DaysOfCode",
	"#Developer", "#SoftwareEngineer", "#WebDev",
	"#Programming", "#CodingLife", "#TechTalent",
	"#DevCommunity", "#CodeLife", "#TechCareer",
}

var techHashtags = []string{
	"#Python", "#JavaScript", "#React", "#NodeJS",
	"#AWS", "#Cloud", "#Docker", "#Kubernetes",
	"#AI", "#MachineLearning", "#DataScience",
	"#FullStack", "#BackEnd", "#DevOps",
}

var growthHashtags = []string{
	"#CareerGrowth", "#TechGrowth", "#LearnToCode",
	"#DevLife", "#CodingTips", "#TechAdvice",
	"#BuildInPublic", "#DevJourney", "#CodeMentor",
}

var engagementHooks = []string{
	"🤔 What's your take on this?",
	"💭 Share your experience!",
	"👇 Drop your favorite tool below",
	"🔄 RT if you agree",
	"❤️ Like if you've experienced this",
	"💡 What would you add?",
	"🎯 Tag someone who needs to see this",
	"📊 Which approach do you prefer?",
	"🚀 Share your success stories!",
	"💪 How do you handle this challenge?",
}

var timeBasedContent = map[string][]string{
	"morning": {
		"☀️ Morning motivation for devs",
		"🎯 Set your coding goals",
		"💡 Start your day with this tech tip",
	},
	"afternoon": {
		"⚡ Quick productivity hack",
		"🔍 Deep dive into tech",
		"💻 Coding challenge time",
	},
	"evening": {
		"📚 Evening learning session",
		"🤔 Reflect on your code",
		"🌟 Share your daily win",
	},
}

// Template собирает пост из локальных заготовок. Работает без сети,
// используется как запасной путь при недоступности LLM.
type Template struct {
	rng *rand.Rand
	now func() time.Time
}

// NewTemplate создаёт генератор шаблонов.
func NewTemplate() *Template {
	return &Template{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewTemplateWithClock создаёт генератор с фиксированными источниками
// случайности и времени.
func NewTemplateWithClock(rng *rand.Rand, now func() time.Time) *Template {
	return &Template{rng: rng, now: now}
}

// Generate возвращает один из восьми шаблонов, заполненный темой,
// хэштегами, хуком и интро по времени суток.
func (t *Template) Generate(topic, contentType string) string {
	hashtags := fmt.Sprintf("%s %s %s",
		primaryHashtags[t.rng.Intn(len(primaryHashtags))],
		techHashtags[t.rng.Intn(len(techHashtags))],
		growthHashtags[t.rng.Intn(len(growthHashtags))],
	)
	hook := engagementHooks[t.rng.Intn(len(engagementHooks))]
	intro := t.timeIntro()

	templates := []string{
		fmt.Sprintf("%s\n\n💡 %s pro tip:\n• Start small\n• Build consistently\n• Share progress\n\n%s\n\n%s", intro, topic, hook, hashtags),
		fmt.Sprintf("🔥 Want to excel in %s?\n\n3 game-changing practices:\n1️⃣ Code daily\n2️⃣ Read documentation\n3️⃣ Build projects\n\n%s\n\n%s", topic, hook, hashtags),
		fmt.Sprintf("🚀 %s wisdom:\n\nWhat I wish I knew earlier:\n• Test early\n• Document well\n• Seek feedback\n\n%s\n\n%s", topic, hook, hashtags),
		fmt.Sprintf("%s\n\nMy top 3 tools for %s:\n🛠️ [Tool 1]\n⚡ [Tool 2]\n🔧 [Tool 3]\n\n%s\n\n%s", intro, topic, hook, hashtags),
		fmt.Sprintf("💎 %s golden rule:\n\nDon't just write code.\nWrite code that tells a story.\n\n%s\n\n%s", topic, hook, hashtags),
		fmt.Sprintf("📈 Boost your %s skills:\n\nKey focus areas:\n• Core concepts\n• Best practices\n• Real projects\n\n%s\n\n%s", topic, hook, hashtags),
		fmt.Sprintf("⚡ Quick %s tip:\n\nAlways remember:\nCode for humans first,\ncomputers second.\n\n%s\n\n%s", topic, hook, hashtags),
		fmt.Sprintf("🎯 %s challenge:\n\nBuild something useful today.\nShare your progress.\nSupport others.\n\n%s\n\n%s", topic, hook, hashtags),
	}
	return templates[t.rng.Intn(len(templates))]
}

// timeIntro выбирает интро по часу: 05–11 утро, 12–16 день, остальное вечер.
func (t *Template) timeIntro() string {
	hour := t.now().Hour()
	var bucket string
	switch {
	case hour >= 5 && hour < 12:
		bucket = "morning"
	case hour >= 12 && hour < 17:
		bucket = "afternoon"
	default:
		bucket = "evening"
	}
	intros := timeBasedContent[bucket]
	return intros[t.rng.Intn(len(intros))]
}
