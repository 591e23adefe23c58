package catalog

import (
	"time"

	"whoof-notifications/internal/domain/entity"
)

// Calendar resolves which monthly challenge is active at a given time
type Calendar struct {
	byMonth map[time.Month]entity.Challenge
}

// NewCalendar indexes the challenge definitions by month. A later
// definition for the same month replaces the earlier one.
func NewCalendar(challenges []entity.Challenge) *Calendar {
	byMonth := make(map[time.Month]entity.Challenge, len(challenges))
	for _, ch := range challenges {
		byMonth[ch.Month] = ch
	}
	return &Calendar{byMonth: byMonth}
}

// DefaultCalendar builds the calendar from the built-in yearly program
func DefaultCalendar() *Calendar {
	return NewCalendar(defaultChallenges)
}

// Current returns the challenge active for now's month
func (c *Calendar) Current(now time.Time) (entity.Challenge, bool) {
	ch, ok := c.byMonth[now.Month()]
	return ch, ok
}

// ByMonth returns the challenge defined for the given month
func (c *Calendar) ByMonth(month time.Month) (entity.Challenge, bool) {
	ch, ok := c.byMonth[month]
	return ch, ok
}

var defaultChallenges = []entity.Challenge{
	{
		ID: "january_restart", Month: time.January, Name: "Restart Your Walk",
		Objective: "20 balades dans le mois", ObjectiveType: entity.ObjectiveWalks, Target: 20,
		Reward: `Badge "Nouvelle Meute 2025"`, Badge: "❄️",
		Milestones: []string{
			"On démarre en douceur : ta 1ère balade de l'année t'attend 🐾✨",
			"Déjà 5 balades ! Continue sur ta lancée 🔥",
			"Mi-parcours atteint ! 10 balades, encore 10 🎯",
			"Plus que 5 balades pour ton badge ! 💪",
		},
	},
	{
		ID: "february_match", Month: time.February, Name: "Match My Dog",
		Objective: "10 nouvelles rencontres / likes / matches", ObjectiveType: entity.ObjectiveMatches, Target: 10,
		Reward: `Badge "Dog Lover" + boost profil 24h`, Badge: "💘",
		Milestones: []string{
			"C'est la saison de l'amour… et ton chien le sent 😏❤️",
			"Premier Whoof envoyé ! Continue de flairer 👃",
			"5 Whoofs déjà ! Ton chien est populaire 🌟",
			"Encore 3 rencontres pour devenir Dog Lover ! 💕",
		},
	},
	{
		ID: "march_explorer", Month: time.March, Name: "Spring Explorer",
		Objective: "Explorer 3 nouveaux parcs", ObjectiveType: entity.ObjectiveParks, Target: 3,
		Reward: `Badge "Découvreur du Printemps"`, Badge: "🌼",
		Milestones: []string{
			"Nouveau parc repéré ! C'est le moment de l'explorer 🌸🐕",
			"Premier parc découvert ! 2 à trouver encore 🗺️",
			"Wow ! 2 parcs explorés. Le printemps te va bien 🌸",
		},
	},
	{
		ID: "april_clean", Month: time.April, Name: "Clean & Walk",
		Objective: "5 balades clean-walk", ObjectiveType: entity.ObjectiveWalks, Target: 5,
		Reward: `Badge "Green Paw"`, Badge: "🌍",
		Milestones: []string{
			"Une petite balade & un petit geste pour la planète ? 🌍🐾",
			"Première clean-walk ! La planète te dit merci 🌿",
			"À mi-chemin de ton badge Green Paw ! 💚",
		},
	},
	{
		ID: "may_social", Month: time.May, Name: "Playdate Social Club",
		Objective: "Participer à une balade groupée", ObjectiveType: entity.ObjectiveTasks, Target: 1,
		Reward: `Badge "Social Dog"`, Badge: "🐣",
		Milestones: []string{
			"On sort en bande aujourd'hui ? Une balade groupée débute près de toi ! 🎉",
			"Balade groupée près de chez toi dans 1h ! 🐕‍🦺",
		},
	},
	{
		ID: "june_summer", Month: time.June, Name: "Summer Prep Challenge",
		Objective: "600 minutes de marche cumulée", ObjectiveType: entity.ObjectiveMinutes, Target: 600,
		Reward: `Badge "Summer Ready"`, Badge: "☀️",
		Milestones: []string{
			"Il fait chaud, mais pas trop : moment parfait pour une belle balade ☀️🐶",
			"Déjà 200 minutes ! Continue comme ça 💪",
			"Mi-parcours ! 300 minutes au compteur ⚡",
			"Plus que 100 minutes pour être Summer Ready ! 🏖️",
		},
	},
	{
		ID: "july_photo", Month: time.July, Name: "Photo Of The Summer",
		Objective: "Poster 5 photos", ObjectiveType: entity.ObjectivePhotos, Target: 5,
		Reward: `Mise en avant dans le "Top du mois"`, Badge: "🏖️",
		Milestones: []string{
			"Aujourd'hui, capture votre moment soleil ☀️📸",
			"Première photo postée ! Encore 4 pour le top 🌟",
			"À mi-chemin ! Continue de capturer l'été 📷",
		},
	},
	{
		ID: "august_holiday", Month: time.August, Name: "Holiday Walks",
		Objective: "Marcher dans 3 lieux différents", ObjectiveType: entity.ObjectiveParks, Target: 3,
		Reward: `Badge "Globe-Trotteur 🐕"`, Badge: "🌞",
		Milestones: []string{
			"Nouvel endroit ? Partage-le avec la meute 🌍🐾",
			"Premier lieu découvert ! Où vas-tu ensuite ? 🗺️",
			"Dernière destination avant ton badge ! 🎒",
		},
	},
	{
		ID: "september_routine", Month: time.September, Name: "Routine Reset",
		Objective: "20 minutes par jour pendant 20 jours", ObjectiveType: entity.ObjectiveDays, Target: 20,
		Reward: `Badge "Retour au Parc"`, Badge: "🍂",
		Milestones: []string{
			"Routine mode ON ! 20 minutes, easy 🌿🐶",
			"Jour 5 : la routine s'installe 🔄",
			"Jour 10 ! Mi-parcours du challenge 💪",
			"Jour 15 : tu es incroyable ! Plus que 5 🎯",
		},
	},
	{
		ID: "october_halloween", Month: time.October, Name: "Howl-o-Challenge",
		Objective: "Photo en costume", ObjectiveType: entity.ObjectivePhotos, Target: 1,
		Reward: "Badge halloween + classement fun", Badge: "🎃",
		Milestones: []string{
			"On veut ton plus beau costume… ou ton plus moche 👻🐶",
			"Photo postée ! Tu participes au classement Halloween 🎃",
		},
	},
	{
		ID: "november_cold", Month: time.November, Name: "Cold Doesn't Scare Us",
		Objective: "10 balades malgré la météo", ObjectiveType: entity.ObjectiveWalks, Target: 10,
		Reward: `Badge "Brave Dog"`, Badge: "❄️",
		Milestones: []string{
			"Un peu froid mais toujours motivé ? On t'admire ❄️🐾",
			"5 balades sous le froid ! Tu es courageux 🦸",
			"Plus que 2 balades pour le badge Brave Dog ! 💪",
		},
	},
	{
		ID: "december_advent", Month: time.December, Name: "Calendar of the Paw",
		Objective: "24 mini-défis", ObjectiveType: entity.ObjectiveTasks, Target: 24,
		Reward: `Badge "Dogmas Legend"`, Badge: "🎄",
		Milestones: []string{
			"Case 1 ouverte ! 🎄🐶 Aujourd'hui : une photo près du sapin",
			"Jour 5 du calendrier : défi spécial t'attend ! 🎁",
			"Jour 12 : mi-parcours du calendrier ! Continue 🌟",
			"Jour 20 : presque Legend ! Encore 4 défis 🏆",
		},
	},
}
