package chat

import (
	"fmt"
	"strings"

	"ayura/internal/core/dosha"
	"ayura/internal/core/pantry"
)

// 主題
const (
	TopicFood     = "food"
	TopicBalance  = "balance"
	TopicStress   = "stress"
	TopicSleep    = "sleep"
	TopicRoutine  = "routine"
	TopicFallback = "general"
)

// 依序比對，第一個命中的主題勝出
var topics = []struct {
	name     string
	keywords []string
}{
	{TopicFood, []string{"eat", "food", "meal", "diet", "breakfast", "lunch", "dinner", "hungry"}},
	{TopicBalance, []string{"balance", "dosha", "imbalance"}},
	{TopicStress, []string{"stress", "stressed", "anxious", "anxiety", "worried", "overwhelmed"}},
	{TopicSleep, []string{"sleep", "insomnia", "tired", "rest", "night"}},
	{TopicRoutine, []string{"routine", "daily", "schedule", "morning", "habit"}},
}

var foodAdvice = map[dosha.Dosha]string{
	dosha.Vata:  "For Vata, favor warm, moist and grounding meals such as kitchari, root vegetable stew or oat porridge with ghee. Avoid cold, raw and dry foods.",
	dosha.Pitta: "For Pitta, favor cooling and fresh meals such as basmati rice with vegetables, cucumber raita or quinoa with greens. Go easy on chili, alcohol and fried food.",
	dosha.Kapha: "For Kapha, favor light, warm and spiced meals such as lentil soup, millet upma or steamed greens. Keep heavy, oily and very sweet foods to a minimum.",
}

var balanceAdvice = map[dosha.Dosha]string{
	dosha.Vata:  "To balance Vata, keep warm, eat at regular times and slow down with calming practices like oil massage and gentle yoga.",
	dosha.Pitta: "To balance Pitta, stay cool, avoid skipping meals and leave room for play. Moonlight walks and swimming help release heat.",
	dosha.Kapha: "To balance Kapha, keep moving with brisk daily exercise, welcome variety and favor light, stimulating foods.",
}

var routineAdvice = map[dosha.Dosha]string{
	dosha.Vata:  "A steady routine suits Vata best: wake around 6, have a warm breakfast, keep meals at fixed times and be in bed by 10.",
	dosha.Pitta: "For Pitta, make lunch the main meal, schedule breaks during intense work and wind down without screens in the evening.",
	dosha.Kapha: "For Kapha, rise early before 6, exercise in the morning, keep dinner light and avoid daytime naps.",
}

// Topic 判斷訊息主題
func Topic(message string) string {
	words := strings.Fields(pantry.Normalize(message))
	for _, t := range topics {
		for _, kw := range t.keywords {
			for _, w := range words {
				if w == kw {
					return t.name
				}
			}
		}
	}
	return TopicFallback
}

// RuleReply 依關鍵字與使用者狀態產生規則回覆
func RuleReply(message string, cc Context) string {
	d := cc.Dosha
	known := d.Valid()

	switch Topic(message) {
	case TopicFood:
		if !known {
			return "Warm, freshly cooked meals with mild spices suit most people. Take the dosha quiz and I can tailor food suggestions to you."
		}
		return withGoals(foodAdvice[d], cc.HealthGoals)
	case TopicBalance:
		if !known {
			return "Take the dosha quiz first so I know which dosha to help you balance."
		}
		return balanceAdvice[d]
	case TopicStress:
		reply := "Try slow breathing such as alternate nostril breathing for five minutes, a short walk outside and a warm cup of tulsi or chamomile tea."
		if s := cc.Recent.RecentStress; s != nil && *s >= 7 {
			reply = fmt.Sprintf("Your recent stress level of %d/10 is high. %s", *s, reply)
		}
		if d == dosha.Vata {
			reply += " Vata types benefit most from warmth, routine and a gentle oil massage."
		}
		return reply
	case TopicSleep:
		reply := "Keep a regular bedtime, dim screens an hour before bed and try warm milk with nutmeg."
		if h := cc.Recent.RecentSleep; h != nil && *h < 7 {
			reply = fmt.Sprintf("You have been sleeping about %.1f hours, which is below the 7 to 9 hours most adults need. %s", *h, reply)
		}
		return reply
	case TopicRoutine:
		if !known {
			return "Wake early, eat your largest meal at midday and go to bed at a regular time. Take the dosha quiz for a routine built around your constitution."
		}
		return routineAdvice[d]
	default:
		reply := "I can help with food choices, dosha balance, stress, sleep and daily routines. What would you like to focus on?"
		if g := cc.Recent.RecentDigestion; g != nil && *g <= 4 {
			reply = "Your digestion has been low lately. Try ginger tea before meals and eat your main meal at lunch. " + reply
		}
		return reply
	}
}

func withGoals(reply string, goals []string) string {
	if len(goals) == 0 {
		return reply
	}
	return fmt.Sprintf("%s Keep your goal of %s in mind when choosing portions.", reply, strings.ToLower(goals[0]))
}
