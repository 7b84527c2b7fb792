package db

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the relational schema on startup. Statements are
// ordered parents-first so the foreign keys resolve; reruns are no-ops.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema bootstrap: %w", err)
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT PRIMARY KEY AUTO_INCREMENT,
		username VARCHAR(50) UNIQUE NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		full_name VARCHAR(100) NOT NULL,
		phone VARCHAR(20),
		user_type ENUM('admin', 'customer') DEFAULT 'customer',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS drivers (
		id INT PRIMARY KEY AUTO_INCREMENT,
		name VARCHAR(100) NOT NULL,
		license_number VARCHAR(50) UNIQUE NOT NULL,
		phone VARCHAR(20),
		address TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS buses (
		id INT PRIMARY KEY AUTO_INCREMENT,
		bus_number VARCHAR(20) UNIQUE NOT NULL,
		bus_type ENUM('minibus', 'bus', 'coach') DEFAULT 'bus',
		total_seats INT NOT NULL,
		amenities TEXT,
		driver_id INT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS routes (
		id INT PRIMARY KEY AUTO_INCREMENT,
		origin VARCHAR(100) NOT NULL,
		destination VARCHAR(100) NOT NULL,
		distance DECIMAL(10,2),
		duration TIME,
		price DECIMAL(10,2) NOT NULL,
		UNIQUE KEY unique_route (origin, destination)
	)`,

	`CREATE TABLE IF NOT EXISTS schedules (
		id INT PRIMARY KEY AUTO_INCREMENT,
		bus_id INT NOT NULL,
		route_id INT NOT NULL,
		departure_time DATETIME NOT NULL,
		arrival_time DATETIME NOT NULL,
		status ENUM('scheduled', 'departed', 'arrived', 'cancelled') DEFAULT 'scheduled',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (bus_id) REFERENCES buses(id) ON DELETE CASCADE,
		FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS seats (
		id INT PRIMARY KEY AUTO_INCREMENT,
		bus_id INT NOT NULL,
		seat_number VARCHAR(10) NOT NULL,
		seat_type ENUM('regular', 'premium') DEFAULT 'regular',
		is_available BOOLEAN DEFAULT TRUE,
		FOREIGN KEY (bus_id) REFERENCES buses(id) ON DELETE CASCADE,
		UNIQUE KEY unique_seat (bus_id, seat_number)
	)`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id INT PRIMARY KEY AUTO_INCREMENT,
		booking_ref VARCHAR(32) UNIQUE NOT NULL,
		user_id INT NOT NULL,
		schedule_id INT NOT NULL,
		total_passengers INT NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL,
		booking_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		status ENUM('confirmed', 'cancelled', 'completed') DEFAULT 'confirmed',
		payment_status ENUM('pending', 'paid', 'failed') DEFAULT 'pending',
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (schedule_id) REFERENCES schedules(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id INT PRIMARY KEY AUTO_INCREMENT,
		ticket_number VARCHAR(32) UNIQUE NOT NULL,
		booking_id INT NOT NULL,
		passenger_name VARCHAR(100) NOT NULL,
		passenger_age INT,
		seat_number VARCHAR(10) NOT NULL,
		fare DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE CASCADE
	)`,
}
