package service

// Similarity — нормированная схожесть Левенштейна в [0..1].
// Оба аргумента проходят Normalize ровно один раз, до расчёта расстояния.
func Similarity(a, b string) float64 {
	return similarity(Normalize(a), Normalize(b))
}

// similarity ожидает уже нормализованные строки (ранжировщик нормализует
// поля заранее, один раз на строку накладной и на товар).
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	m := len([]rune(a))
	if mb := len([]rune(b)); mb > m {
		m = mb
	}
	d := Levenshtein(a, b)
	return 1 - float64(d)/float64(m)
}
