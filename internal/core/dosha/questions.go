package dosha

var questions = []Question{
	{ID: 1, Question: "What is your body frame?", Options: options("Thin & Light", "Medium & Proportionate", "Heavy & Sturdy")},
	{ID: 2, Question: "What is your skin type?", Options: options("Dry & Rough", "Oily & Sensitive", "Thick & Cool")},
	{ID: 3, Question: "What is your hair type?", Options: options("Thin, Dry & Curly", "Medium, Fair & Thin", "Thick, Dark & Wavy")},
	{ID: 4, Question: "How would you describe your digestion?", Options: options("Irregular, Gas & Bloating", "Strong, Sometimes Acidic", "Slow & Heavy")},
	{ID: 5, Question: "What are your typical energy levels?", Options: options("Variable & Restless", "Active & Focused", "Steady & Enduring")},
	{ID: 6, Question: "What is your temperature preference?", Options: options("Prefer Warm & Cozy", "Prefer Cool & Fresh", "Can Tolerate Both")},
	{ID: 7, Question: "How would you describe your sleep?", Options: options("Light, Interrupted, Few Hours", "Moderate, 6-7 Hours", "Deep, Heavy, 8+ Hours")},
	{ID: 8, Question: "What is your appetite like?", Options: options("Variable & Unpredictable", "Strong & Consistent", "Steady & Moderate")},
	{ID: 9, Question: "How are your bowel movements typically?", Options: options("Irregular, Constipation", "Regular, 2-3 Times Daily", "Slow, Once Daily, Heavy")},
	{ID: 10, Question: "How do you respond to stress?", Options: options("Anxious, Worry & Fear", "Irritated, Anger & Frustration", "Calm, Withdrawn, Sluggish")},
}

// options 依 vata、pitta、kapha 順序建立選項
func options(vata, pitta, kapha string) []Option {
	return []Option{
		{Text: vata, Dosha: Vata, Points: DefaultWeight},
		{Text: pitta, Dosha: Pitta, Points: DefaultWeight},
		{Text: kapha, Dosha: Kapha, Points: DefaultWeight},
	}
}

// Questions 回傳問卷題目副本
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

var profiles = map[Dosha]Profile{
	Vata: {
		Dosha:       Vata,
		Name:        "Vata",
		Tagline:     "Creative, Energetic, Flexible",
		Description: "Vata governs movement and is associated with air and space. Vata types are creative and quick, but may experience anxiety, dry skin and irregular digestion when imbalanced.",
		Recommendations: []string{
			"Favor warm, cooked, grounding foods",
			"Stay well-hydrated with warm liquids",
			"Practice calming yoga and meditation",
			"Maintain regular routines and schedules",
			"Keep warm and avoid cold exposure",
		},
	},
	Pitta: {
		Dosha:       Pitta,
		Name:        "Pitta",
		Tagline:     "Driven, Intelligent, Passionate",
		Description: "Pitta governs transformation and metabolism. Pitta types have strong digestion and sharp minds, but may experience inflammation, irritability and digestive heat when imbalanced.",
		Recommendations: []string{
			"Favor cool, fresh foods like salads and fruits",
			"Stay hydrated with coconut water and cooling drinks",
			"Try cooling activities like swimming",
			"Practice stress management and relaxation",
			"Avoid overworking and competitive stress",
		},
	},
	Kapha: {
		Dosha:       Kapha,
		Name:        "Kapha",
		Tagline:     "Stable, Nurturing, Calm",
		Description: "Kapha governs structure and is associated with earth and water. Kapha types are steady with strong endurance, but may experience sluggishness, weight gain and congestion when imbalanced.",
		Recommendations: []string{
			"Eat light, spicy, warming foods",
			"Engage in vigorous daily exercise",
			"Avoid heavy, oily or dairy-rich foods",
			"Wake up early and stay active throughout the day",
			"Use warming spices like ginger and black pepper",
		},
	},
}

// ProfileFor 取得體質說明
func ProfileFor(d Dosha) (Profile, bool) {
	p, ok := profiles[d]
	if !ok {
		return Profile{}, false
	}
	p.Recommendations = append([]string(nil), p.Recommendations...)
	return p, true
}
