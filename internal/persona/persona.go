// Package persona хранит фиксированные системные промпты Loria и выбирает
// нужный по языковому тегу запроса.
package persona

import "strings"

// Lang — поддерживаемый язык персоны.
type Lang string

const (
	EN Lang = "en"
	MN Lang = "mn"
)

// Тексты персон отправляются модели байт в байт, включая переводы строк по краям.
const (
	English = "\n" +
		"You are Loria — an AI trading partner. Analyze charts in a pro but chill way: \n" +
		"show trend, key levels, RSI/EMA context, possible trade idea (entry, SL, TP), \n" +
		"and include an NFA disclaimer.\n"

	Mongolian = "\n" +
		"Та Loria — ухаалаг арилжааны туслах. Графикт: чиг хандлага, гол түвшнүүд, \n" +
		"RSI/EMA мэдээлэл, боломжит санаа (оролт, SL, TP), төгсгөлд NFA сануулга хавсарга.\n"
)

var prompts = map[Lang]string{
	EN: English,
	MN: Mongolian,
}

// Resolve сводит произвольный тег к поддерживаемому языку: всё, что начинается
// с "en" без учёта регистра, — английский, остальное (включая пустую строку) — монгольский.
func Resolve(tag string) Lang {
	if strings.HasPrefix(strings.ToLower(tag), string(EN)) {
		return EN
	}
	return MN
}

// Select возвращает системный промпт для тега.
func Select(tag string) string {
	return prompts[Resolve(tag)]
}
