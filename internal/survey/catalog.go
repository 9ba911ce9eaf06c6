// Package survey holds the fixed catalog of daily journal surveys.
//
// Question texts are the product's original Russian prompt set. A choice
// layout is a 2-D arrangement of fixed answer buttons; nil means free text.
package survey

// Question is one prompt within a survey.
type Question struct {
	Text    string
	Choices [][]string // nil for free-text questions
}

// Survey is a named, ordered list of questions sent together.
type Survey struct {
	Category  string
	Questions []Question
}

// Category names, also used as the `category` column of stored entries.
const (
	Sleep         = "Сон"
	EnergyControl = "Энергетический контроль"
	Dopamine      = "Импульсивность"
	Nutrition     = "Питание"
	Skincare      = "Уход"
	Sun           = "Солнце"
	Work          = "Работа/Обучение"
)

var yesNo = [][]string{{"Да", "Нет"}}

var catalog = map[string][]Question{
	Sleep: {
		{Text: "Во сколько лег спать?"},
		{Text: "Во сколько проснулся?"},
		{Text: "Как оцениваешь качество сна? (1-5)", Choices: [][]string{{"5", "4", "3", "2", "1"}}},
		{Text: "Просыпался ли ночью?", Choices: yesNo},
		{Text: "Чувствуешь себя выспавшимся?", Choices: yesNo},
		{Text: "Было ли пересыпание?", Choices: yesNo},
		{Text: "Комментарий (необязательно)"},
	},
	EnergyControl: {
		{Text: "Соблюдал ли энергетический контроль?", Choices: yesNo},
		{Text: "Если нет, то сколько раз произошло истощение энергии?"},
	},
	Dopamine: {
		{Text: "Какими приложениями пользовался?", Choices: [][]string{{"YouTube", "Instagram", "Dating Apps"}}},
		{Text: "Сколько времени смотрел reels/shorts?", Choices: [][]string{{"<30 мин", "30-60 мин", ">1 час"}}},
		{Text: "Общее время использования смартфона?", Choices: [][]string{{"<2 ч", "2-4 ч", ">4 ч"}}},
		{Text: "Насколько хорошо контролировал импульсы? (1-5)", Choices: [][]string{{"5", "4", "3", "2", "1"}}},
	},
	Nutrition: {
		{Text: "Сколько приёмов пищи было сегодня?", Choices: [][]string{{"0", "1", "2", "3", "4", "5"}}},
		{Text: "Был ли перекус после 20:00?", Choices: yesNo},
		{Text: "Сколько воды выпил? (в стаканах)", Choices: [][]string{{"1-3", "4-6", "7+"}}},
		{Text: "Какие БАДы принял? (можно несколько)", Choices: [][]string{{"Cod liver oil", "Magnesium glycinate", "L-theanine"}}},
		{Text: "Другие БАДы (ввести вручную, необязательно)"},
	},
	Skincare: {
		{Text: "Какой уход был сделан?", Choices: [][]string{{"Ниацинамид", "Ретинол", "Пилинг", "Ничего"}}},
	},
	Sun: {
		{Text: "Принимал ли солнечные лучи?", Choices: yesNo},
		{Text: "Как долго?", Choices: [][]string{{"<15 мин", "15-30 мин", ">30 мин"}}},
	},
	Work: {
		{Text: "Сколько времени сегодня посвятил работе/обучению?", Choices: [][]string{{"<1 ч", "1-2 ч", "2-4 ч", ">4 ч"}}},
	},
}

// Get returns the survey for a known category. The question slice is a fresh
// copy on every call; callers own it and may consume it destructively.
func Get(category string) Survey {
	qs := catalog[category]
	out := make([]Question, len(qs))
	copy(out, qs)
	return Survey{Category: category, Questions: out}
}

// Categories lists the known category names in a stable order.
func Categories() []string {
	return []string{Sleep, EnergyControl, Dopamine, Nutrition, Skincare, Sun, Work}
}

// Reminders are standalone nudges, keyed by name: sent on schedule, no reply
// expected, nothing persisted. The scheduler owns the times.
var Reminders = map[string]string{
	"wind-down": "🌙 Время готовиться ко сну: выключи свет, убери гаджеты, позволь мозгу отдохнуть. Завтрашний ты скажет спасибо!",
	"sunlight":  "☀️ Пора выйти на солнечный свет!",
	"deep-work": "🎯 Планируется 4-часовая работа или обучение. Будь продуктивен!",
}
