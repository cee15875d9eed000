package driveauth

const (
	UpsertCredential = `
		INSERT INTO user_drive_auth (user_id, encrypted_refresh_token, scopes, last_validated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE
		SET encrypted_refresh_token = EXCLUDED.encrypted_refresh_token,
		    scopes = EXCLUDED.scopes,
		    last_validated_at = now()
	`
	SelectCredential = `
		SELECT user_id, encrypted_refresh_token, scopes, last_validated_at
		FROM user_drive_auth
		WHERE user_id = $1
	`
	TouchCredential = `
		UPDATE user_drive_auth
		SET last_validated_at = $2
		WHERE user_id = $1
	`
	DeleteCredential = `
		DELETE FROM user_drive_auth
		WHERE user_id = $1
	`
	SelectUserIDs = `
		SELECT user_id
		FROM user_drive_auth
		ORDER BY user_id
	`
)
