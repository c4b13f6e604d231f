package content

import "strings"

// Format приводит текст поста к публикуемому виду: схлопывает пробелы
// и переводы строк, отделяет хэштеги пробелом и ограничивает длину.
// Чистая функция, длина результата в рунах не превышает maxLength.
func Format(text string, maxLength int) string {
	formatted := strings.Join(strings.Fields(text), " ")
	formatted = spaceHashtags(formatted)
	return truncate(formatted, maxLength)
}

// spaceHashtags ставит пробел перед '#', если его там ещё нет и это не
// HTML-сущность вида "&#...". Повторный вызов ничего не меняет.
func spaceHashtags(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)
	var prev rune
	for i, r := range text {
		if r == '#' && i > 0 && prev != '&' && prev != ' ' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// truncate обрезает текст до maxLength рун, добавляя многоточие.
func truncate(text string, maxLength int) string {
	if maxLength <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	cut := maxLength - 3
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + "..."
}
