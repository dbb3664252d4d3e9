package ui

const (
	WelcomeAskName = "Добро пожаловать! Для использования бота необходимо зарегистрироваться.\n" +
		"Пожалуйста, отправьте ваше ФИО (полное имя) для регистрации."
	RegistrationPending   = "Ваша регистрация еще не одобрена администратором. Пожалуйста, подождите."
	RegistrationSubmitted = "Ваша регистрация отправлена на модерацию. Вы получите уведомление, когда администратор ее рассмотрит."
	InvalidName           = "Пожалуйста, отправьте ваше ФИО текстом (не длиннее 200 символов)."
	Cancelled             = "Действие отменено."
	NotRegistered         = "Вы не зарегистрированы. Используйте /start"
	UnknownCommand        = "Неизвестная команда. Используйте /start"

	PhotoNotAllowed = "Вы не можете отправлять фото. Зарегистрируйтесь и дождитесь одобрения."
	PhotoSubmitted  = "Ваше фото отправлено на модерацию. При одобрении вы получите 1 балл."
	PhotoFailed     = "❌ Произошла ошибка при обработке вашего фото."

	NoCommandRights = "У вас нет прав для этой команды."
	NoActionRights  = "У вас нет прав для этого действия."

	RemovePointsUsage = "Использование: /remove_points <user_id> <amount> [reason]"
	AddPointsUsage    = "Использование: /add_points <user_id> <amount> [reason]"
	AmountNotPositive = "Сумма должна быть положительной."
	BadPointsArgs     = "Некорректные аргументы. user_id и amount должны быть числами."
	PointsUserMissing = "Пользователь не найден."
	TargetNotNotified = "Не удалось уведомить пользователя."
	CommandFailed     = "Произошла ошибка при выполнении команды."
	GenericError      = "Произошла ошибка. Попробуйте позже."

	UserApprovedNotice  = "✅ Ваша регистрация одобрена! Теперь вы можете отправлять фото и зарабатывать баллы."
	UserRejectedNotice  = "❌ Ваша регистрация отклонена администратором."
	PhotoApprovedNotice = "✅ Ваше фото одобрено! Вам начислен 1 балл.\nНапишите /profile, чтобы узнать больше о баллах."
	PhotoRejectedNotice = "❌ Ваше фото отклонено администратором."

	AnswerUserApproved  = "Пользователь одобрен"
	AnswerUserRejected  = "Пользователь отклонен"
	AnswerPhotoApproved = "Фото одобрено (+1 балл)"
	AnswerPhotoRejected = "Фото отклонено"
	AnswerAlreadyDone   = "Решение уже принято"
	AnswerUserMissing   = "Пользователь не найден"
	AnswerPhotoMissing  = "Фото не найдено"
	AnswerFailed        = "Произошла ошибка"

	ButtonApprove      = "✅ Одобрить"
	ButtonApprovePhoto = "✅ Одобрить (+1 балл)"
	ButtonReject       = "❌ Отклонить"
)
