package catalog

import (
	"whoof-notifications/internal/domain/entity"
)

// defaultTemplates is the built-in Whoof notification set. Declaration
// order is the catalog order.
var defaultTemplates = []entity.Template{
	// A. Matching & interactions
	{ID: "match_whoofed", Category: entity.CategoryMatching, Title: "Nouveau Whoof", Message: "Quelqu'un vient de Whoofer ton profil 👀🐾", Priority: entity.PriorityHigh},
	{ID: "match_compatible_nearby", Category: entity.CategoryMatching, Title: "Truffe compatible", Message: "Nouvelle truffe compatible près de chez toi ❤️", Priority: entity.PriorityHigh},
	{ID: "match_potential", Category: entity.CategoryMatching, Title: "Match potentiel", Message: "On dirait un match 🐶 + 🐶… ouvre pour vérifier !", Priority: entity.PriorityMedium},
	{ID: "match_profile_views", Category: entity.CategoryMatching, Title: "Ton profil cartonne", Message: "Ton profil a été flairé {viewCount} fois aujourd'hui 👃✨", Priority: entity.PriorityLow},
	{ID: "match_pending_response", Category: entity.CategoryMatching, Title: "Message en attente", Message: "{dogName} a aimé ton profil… tu lui réponds ? 😏", Priority: entity.PriorityMedium},
	{ID: "match_new_encounter", Category: entity.CategoryMatching, Title: "Nouvelle rencontre", Message: "Une nouvelle rencontre potentielle vient d'apparaître ✨", Priority: entity.PriorityMedium},
	{ID: "match_prediction", Category: entity.CategoryMatching, Title: "Coup de coeur", Message: "On parie que ton chien va craquer pour ce profil ? 😍", Priority: entity.PriorityLow},
	{ID: "match_waiting", Category: entity.CategoryMatching, Title: "Whoof en attente", Message: "Tu as un Whoof en attente, va jeter un œil 👀", Priority: entity.PriorityMedium},
	{ID: "match_similar_duo", Category: entity.CategoryMatching, Title: "Duo similaire", Message: "Un duo humain + chien te ressemble, fonce voir !", Priority: entity.PriorityLow},
	{ID: "match_same_vibes", Category: entity.CategoryMatching, Title: "Mêmes vibes", Message: "Ce profil a les mêmes vibes que ton chien 🐕💫", Priority: entity.PriorityLow},

	// B. Balades & géolocalisation
	{ID: "walk_dogs_nearby", Category: entity.CategoryWalks, Title: "Activité locale", Message: "{dogCount} chiens se promènent dans ton quartier maintenant 🐾", Priority: entity.PriorityHigh, Timing: hours(8, 20)},
	{ID: "walk_park_active", Category: entity.CategoryWalks, Title: "Parc animé", Message: "Ton parc préféré est animé en ce moment 🌳✨", Priority: entity.PriorityMedium, Timing: hours(8, 20)},
	{ID: "walk_good_weather", Category: entity.CategoryWalks, Title: "Beau temps", Message: "Il fait beau… c'est le moment parfait pour une balade ☀️🐕", Priority: entity.PriorityMedium, Timing: hours(9, 19)},
	{ID: "walk_friend_nearby", Category: entity.CategoryWalks, Title: "Ami proche", Message: "{dogName} est en balade près de toi 😄 Et si vous disiez bonjour ?", Priority: entity.PriorityHigh, Timing: hours(8, 20)},
	{ID: "walk_new_route", Category: entity.CategoryWalks, Title: "Nouvelle balade", Message: "Nouvelle balade populaire repérée dans ton secteur 🗺️", Priority: entity.PriorityLow},
	{ID: "walk_favorite_duo", Category: entity.CategoryWalks, Title: "Duo favori", Message: "Ton duo préféré est dehors ! À quand votre balade ? 😍", Priority: entity.PriorityMedium, Timing: hours(8, 20)},
	{ID: "walk_energy_boost", Category: entity.CategoryWalks, Title: "Plein d'énergie", Message: "Ton chien a de l'énergie ? On a repéré une balade à côté de chez toi ! 💨", Priority: entity.PriorityMedium, Timing: hours(8, 20)},
	{ID: "walk_neighborhood_active", Category: entity.CategoryWalks, Title: "Quartier animé", Message: "Il y a du monde dans ton quartier, c'est l'heure Whoof ! 🐾", Priority: entity.PriorityMedium, Timing: hours(8, 20)},
	{ID: "walk_encounter_close", Category: entity.CategoryWalks, Title: "Rencontre proche", Message: "Pssst… une rencontre canine est en train de se jouer à 200 m 😏", Priority: entity.PriorityHigh, Timing: hours(8, 20)},
	{ID: "walk_group_starting", Category: entity.CategoryWalks, Title: "Balade groupée", Message: "Une balade groupée commence près de toi 🎉", Priority: entity.PriorityHigh, Timing: hours(8, 20)},

	// C. Gamification & challenges
	{ID: "game_daily_streak", Category: entity.CategoryGamification, Title: "Série en cours", Message: "+1 journée d'activité ! On continue ? 🏅🐶", Priority: entity.PriorityLow},
	{ID: "game_challenge_progress", Category: entity.CategoryGamification, Title: "Presque là", Message: "Tu es à {percentage} % du challenge du mois… encore un effort 💪🐾", Priority: entity.PriorityMedium},
	{ID: "game_top_walker", Category: entity.CategoryGamification, Title: "Top marcheur", Message: "Ton chien marche plus que 70 % des utilisateurs aujourd'hui 😎", Priority: entity.PriorityLow},
	{ID: "game_daily_goal", Category: entity.CategoryGamification, Title: "Objectif du jour", Message: "Objectif du jour : 20 min de balade 🌳 Ready ?", Priority: entity.PriorityMedium, Timing: hours(8, 12)},
	{ID: "game_streak_fire", Category: entity.CategoryGamification, Title: "Série impressionnante", Message: "Ton streak Whoof est impressionnant 🔥", Priority: entity.PriorityLow},
	{ID: "game_badge_unlocked", Category: entity.CategoryGamification, Title: "Nouveau badge", Message: "Nouveau badge débloqué 🎖️ {badgeName} !", Priority: entity.PriorityMedium},
	{ID: "game_almost_goal", Category: entity.CategoryGamification, Title: "Presque fini", Message: "Seulement 2 km restants pour atteindre ton objectif ✨", Priority: entity.PriorityMedium},
	{ID: "game_top_local", Category: entity.CategoryGamification, Title: "Champion local", Message: "Félicitations ! Tu es dans le top des marcheurs de ta zone 🏆", Priority: entity.PriorityLow},
	{ID: "game_local_star", Category: entity.CategoryGamification, Title: "Star locale", Message: "Ton chien devient une star locale ⭐", Priority: entity.PriorityLow},
	{ID: "game_weekend_challenge", Category: entity.CategoryGamification, Title: "Challenge weekend", Message: "Le challenge 'Balade du dimanche' commence ! Participe 🐕", Priority: entity.PriorityMedium, Timing: hours(9, 12)},

	// D. Réactivation
	{ID: "reactive_miss_you", Category: entity.CategoryReactivation, Title: "Tu nous manques", Message: "Ton chien nous manque… ça fait un moment 🥺🐾", Priority: entity.PriorityMedium},
	{ID: "reactive_new_dogs", Category: entity.CategoryReactivation, Title: "Nouveaux chiens", Message: "Depuis ton absence, {newDogs} nouveaux chiens ont rejoint ton quartier 🐶", Priority: entity.PriorityMedium},
	{ID: "reactive_new_profiles", Category: entity.CategoryReactivation, Title: "Nouveaux profils", Message: "Des profils qui pourraient te plaire viennent d'arriver 👀", Priority: entity.PriorityMedium},
	{ID: "reactive_nice_walk", Category: entity.CategoryReactivation, Title: "Belle balade", Message: "On a repéré une balade sympa pour toi aujourd'hui 🌿", Priority: entity.PriorityMedium},
	{ID: "reactive_pending_whoof", Category: entity.CategoryReactivation, Title: "Whoof en attente", Message: "Un Whoof en attente depuis 5 jours… tu le laisses mariner ? 😏", Priority: entity.PriorityHigh},
	{ID: "reactive_encounter_waiting", Category: entity.CategoryReactivation, Title: "Rencontre en attente", Message: "Une rencontre t'attend au parc, mais elle ne va pas t'attendre longtemps 👣", Priority: entity.PriorityMedium},
	{ID: "reactive_pack_waiting", Category: entity.CategoryReactivation, Title: "La meute t'attend", Message: "On te garde une place dans la meute 🐺💕 Reviens faire un tour !", Priority: entity.PriorityLow},
	{ID: "reactive_community_miss", Category: entity.CategoryReactivation, Title: "Tu manques", Message: "Ton duo humain + chien manque à la communauté 😌", Priority: entity.PriorityLow},
	{ID: "reactive_new_features", Category: entity.CategoryReactivation, Title: "Nouveautés", Message: "Hey ! On a des nouvelles choses à te montrer 👀✨", Priority: entity.PriorityMedium},
	{ID: "reactive_perfect_day", Category: entity.CategoryReactivation, Title: "Jour parfait", Message: "Aujourd'hui serait un beau jour pour une balade… et une rencontre 🌞", Priority: entity.PriorityMedium},

	// E. Partenaires & services
	{ID: "partner_grooming_discount", Category: entity.CategoryPartners, Title: "Offre toilettage", Message: "Offre locale : -20 % toilettage pour ton chien ✂️✨", Priority: entity.PriorityLow},
	{ID: "partner_new_vet", Category: entity.CategoryPartners, Title: "Nouveau partenaire", Message: "Nouveau partenaire près de toi 🩺 Découvre-le !", Priority: entity.PriorityLow},
	{ID: "partner_shop_opening", Category: entity.CategoryPartners, Title: "Nouvelle boutique", Message: "Une boutique canine ouvre à côté de chez toi 🎁🐕", Priority: entity.PriorityLow},
	{ID: "partner_treats", Category: entity.CategoryPartners, Title: "Friandises naturelles", Message: "Essaye ces friandises naturelles 💚 ton chien dira merci !", Priority: entity.PriorityLow},
	{ID: "partner_activity", Category: entity.CategoryPartners, Title: "Activité dog-friendly", Message: "Une nouvelle activité dog-friendly t'attend dans ton quartier 🐶🎉", Priority: entity.PriorityLow},

	// F. Ton complice & affectif
	{ID: "affective_dog_wants_out", Category: entity.CategoryAffective, Title: "Il te regarde", Message: "Ton chien te regarde. Il veut sortir. Tu ne peux pas dire non 🥺🐾", Priority: entity.PriorityMedium, Timing: hours(16, 19)},
	{ID: "affective_mood_boost", Category: entity.CategoryAffective, Title: "Bonne humeur", Message: "Aujourd'hui : 1 balade = 1 humeur améliorée 😌", Priority: entity.PriorityLow, Timing: hours(9, 12)},
	{ID: "affective_today_could_be", Category: entity.CategoryAffective, Title: "Et si c'était aujourd'hui", Message: "Et si c'était aujourd'hui la belle rencontre ? 🐶❤️🐶", Priority: entity.PriorityLow},
	{ID: "affective_deserves_adventure", Category: entity.CategoryAffective, Title: "Une aventure", Message: "Ton chien mérite une aventure… la rue n'attend que vous ✨", Priority: entity.PriorityMedium},
	{ID: "affective_small_step", Category: entity.CategoryAffective, Title: "Petit pas", Message: "Un petit pas pour toi, une grande joie pour ton chien 🐾💛", Priority: entity.PriorityLow},

	// G. Contextual events. The trigger dispatches these by id, so they
	// live in the catalog like any other template.
	{ID: "activity_wave", Category: entity.CategoryWalks, Title: "Vague d'activité", Message: "{nearbyDogs} chiens actifs près de toi maintenant ! Meute en approche 🐺🎉", Priority: entity.PriorityHigh},
	{ID: "perfect_weather", Category: entity.CategoryWalks, Title: "Météo idéale", Message: "Soleil + {temperature}°C = balade parfaite ☀️🐾", Priority: entity.PriorityMedium},
	{ID: "rainy_weather", Category: entity.CategoryWalks, Title: "Temps de pluie", Message: "Un peu de pluie ne fait pas peur aux vrais aventuriers 🌧️🐕", Priority: entity.PriorityLow},
	{ID: "neighborhood_active", Category: entity.CategoryMatching, Title: "Quartier animé", Message: "Ton quartier s'anime : {newProfiles} nouvelles rencontres potentielles !", Priority: entity.PriorityMedium},
	{ID: "new_park_popular", Category: entity.CategoryWalks, Title: "Nouveau parc populaire", Message: "Un parc devient tendance dans ta zone 🌳✨", Priority: entity.PriorityLow},
	{ID: "dog_lost_alert", Category: entity.CategoryWalks, Title: "Alerte chien perdu", Message: "Alerte : un chien perdu a été signalé dans ta zone ⚠️🐕", Priority: entity.PriorityHigh},
	{ID: "dog_found_alert", Category: entity.CategoryWalks, Title: "Chien retrouvé", Message: "Bonne nouvelle ! Le chien perdu a été retrouvé 🎉❤️", Priority: entity.PriorityHigh},
	{ID: "partner_weekend_offer", Category: entity.CategoryPartners, Title: "Offre partenaire", Message: "Week-end spécial : une friandise offerte en boutique partenaire 🎁🐶", Priority: entity.PriorityLow},
	{ID: "partner_grooming_offer", Category: entity.CategoryPartners, Title: "Offre toilettage", Message: "Offre spéciale toilettage ce week-end ✂️✨", Priority: entity.PriorityLow},
	{ID: "partner_vet_offer", Category: entity.CategoryPartners, Title: "Offre vétérinaire", Message: "Consultation gratuite chez notre partenaire vétérinaire 🩺", Priority: entity.PriorityLow},
}
