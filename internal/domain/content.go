package domain

// ContentTypes — виды постов. Метки только формируют промпт или шаблон,
// никуда не сохраняются.
var ContentTypes = []string{
	"growth_hack", "expert_tip", "thought_leadership",
	"industry_insight", "success_story", "career_advice",
	"tech_prediction", "tool_review", "learning_path",
	"code_wisdom", "productivity_hack", "tech_opinion",
	"quick_tutorial", "resource_share", "challenge",
	"poll", "discussion", "hot_take",
}

// Topics — темы личного бренда. Engager обходит их в этом порядке.
var Topics = []string{
	"software development", "tech entrepreneurship",
	"AI/ML engineering", "full-stack development",
	"system architecture", "cloud solutions",
	"coding best practices", "tech career growth",
	"developer mindset", "tech innovation",
	"startup tech", "modern web dev",
	"backend engineering", "API development",
	"database optimization", "scalable systems",
	"tech leadership", "code quality",
	"developer tools", "automation",
	"tech interviews", "software testing",
	"continuous learning", "tech community",
	"open source", "side projects",
	"tech mentorship", "coding challenges",
	"tech stack choices", "system design",
}
