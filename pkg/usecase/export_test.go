package usecase

var DailyRollup = dailyRollup
