// Package seed holds the initial catalog inserted the first time the offer
// store is observed empty.
package seed

import "github.com/kingstore/api/pkg/dto"

// Offers is the launch catalog. Ids are stable and referenced by existing
// ledger entries, so entries are only ever appended here.
var Offers = []dto.OfferCreate{
	{ID: "pubg-1", Name: "PUBG", Description: "60 شدة", Price: 3500},
	{ID: "pubg-2", Name: "PUBG", Description: "120 شدة", Price: 7000},
	{ID: "pubg-3", Name: "PUBG", Description: "240 شدة", Price: 14000},
	{ID: "ff-1", Name: "Free Fire", Description: "100 💎", Price: 3400},
	{ID: "ff-2", Name: "Free Fire", Description: "210 💎", Price: 6800},
	{ID: "ff-3", Name: "Free Fire", Description: "530 💎", Price: 17000},
	{ID: "ff-4", Name: "Free Fire", Description: "1080 💎", Price: 34000},
	{ID: "ff-5", Name: "Free Fire", Description: "2200 💎", Price: 70000},
	{ID: "ff-6", Name: "Free Fire", Description: "عضوية أسبوعية 💎", Price: 8000},
	{ID: "ff-7", Name: "Free Fire", Description: "عضوية شهرية 💎", Price: 38500},
	{ID: "ff-8", Name: "Free Fire", Description: "باقة تصريح مستوى 6 (120💎)", Price: 2000},
	{ID: "ff-9", Name: "Free Fire", Description: "باقة تصريح مستوى 10 (200💎)", Price: 3200},
	{ID: "ff-10", Name: "Free Fire", Description: "باقة تصريح مستوى 15 (200💎)", Price: 3200},
	{ID: "ff-11", Name: "Free Fire", Description: "باقة تصريح مستوى 20 (200💎)", Price: 3200},
	{ID: "ff-12", Name: "Free Fire", Description: "باقة تصريح مستوى 25 (200💎)", Price: 3200},
	{ID: "ff-13", Name: "Free Fire", Description: "باقة تصريح مستوى 30 (200💎)", Price: 3200},
	{ID: "ff-14", Name: "Free Fire", Description: "باقة تصريح مستوى 35 (350💎)", Price: 4500},
	{ID: "garena-1", Name: "اكواد جارينا", Description: "10$ جارينا", Price: 33700},
	{ID: "garena-2", Name: "اكواد جارينا", Description: "20$ جارينا", Price: 33600},
	{ID: "garena-3", Name: "اكواد جارينا", Description: "50$ جارينا", Price: 33300},
	{ID: "tiktok-1", Name: "عروض التيك توك", Description: "70 🪙", Price: 3500},
	{ID: "tiktok-2", Name: "عروض التيك توك", Description: "100 🪙", Price: 5250},
	{ID: "tiktok-3", Name: "عروض التيك توك", Description: "140 🪙", Price: 7000},
	{ID: "tiktok-4", Name: "عروض التيك توك", Description: "200 🪙", Price: 10500},
	{ID: "tiktok-5", Name: "عروض التيك توك", Description: "500 🪙", Price: 26000},
}
